package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"shophub/config"
	"shophub/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const productColumns = `p.id, p.category_id, p.name, p.slug, p.description, p.price, p.sale_price,
	p.stock_quantity, p.sku, p.images, p.is_featured, p.is_active, p.created_at, p.updated_at`

func scanProduct(row pgx.Row, p *models.Product) error {
	var imagesRaw []byte
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.SalePrice,
		&p.StockQuantity, &p.SKU, &imagesRaw, &p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	p.Images = decodeImages(imagesRaw)
	return nil
}

func decodeImages(raw []byte) []string {
	images := []string{}
	if len(raw) > 0 {
		json.Unmarshal(raw, &images)
	}
	return images
}

func encodeImages(images []string) []byte {
	if images == nil {
		images = []string{}
	}
	raw, _ := json.Marshal(images)
	return raw
}

// Search lists active products with the catalog filters applied. Invalid or
// absent filter values mean "no filter".
func (r *ProductRepository) Search(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	whereConditions := []string{"p.is_active = true"}
	args := []interface{}{}
	paramIndex := 1

	if len(filter.CategoryIDs) > 0 {
		whereConditions = append(whereConditions, fmt.Sprintf("p.category_id = ANY($%d)", paramIndex))
		args = append(args, filter.CategoryIDs)
		paramIndex++
	}

	if filter.MinPrice != nil && filter.MinPrice.IsPositive() {
		whereConditions = append(whereConditions, fmt.Sprintf("p.price >= $%d", paramIndex))
		args = append(args, *filter.MinPrice)
		paramIndex++
	}

	if filter.MaxPrice != nil && filter.MaxPrice.IsPositive() {
		whereConditions = append(whereConditions, fmt.Sprintf("p.price <= $%d", paramIndex))
		args = append(args, *filter.MaxPrice)
		paramIndex++
	}

	if filter.Search != "" {
		whereConditions = append(whereConditions,
			fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", paramIndex, paramIndex))
		args = append(args, "%"+filter.Search+"%")
		paramIndex++
	}

	where := " WHERE " + strings.Join(whereConditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM products p" + where
	if err := config.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := map[string]string{
		models.SortPriceAsc:  "p.price ASC",
		models.SortPriceDesc: "p.price DESC",
		models.SortNameAsc:   "p.name ASC",
		models.SortNameDesc:  "p.name DESC",
	}[filter.Sort]
	if orderBy == "" {
		orderBy = "p.created_at DESC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s, c.id, c.name, c.slug, c.is_active
		FROM products p JOIN categories c ON p.category_id = c.id
		%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy, paramIndex, paramIndex+1)
	args = append(args, filter.Limit, offset)

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var cat models.Category
		var imagesRaw []byte
		err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.SalePrice,
			&p.StockQuantity, &p.SKU, &imagesRaw, &p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&cat.ID, &cat.Name, &cat.Slug, &cat.IsActive)
		if err != nil {
			return nil, 0, err
		}
		p.Images = decodeImages(imagesRaw)
		p.Category = &cat
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// Featured returns up to limit featured active products, newest first.
func (r *ProductRepository) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products p
		WHERE p.is_featured = true AND p.is_active = true
		ORDER BY p.created_at DESC LIMIT $1`, productColumns)
	return r.queryProducts(ctx, query, limit)
}

// Related returns other active products from the same category.
func (r *ProductRepository) Related(ctx context.Context, categoryID, excludeID, limit int) ([]models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products p
		WHERE p.category_id = $1 AND p.id != $2 AND p.is_active = true
		ORDER BY p.created_at DESC LIMIT $3`, productColumns)
	return r.queryProducts(ctx, query, categoryID, excludeID, limit)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]models.Product, error) {
	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products p WHERE p.id = $1", productColumns)
	var p models.Product
	if err := scanProduct(config.DB.QueryRow(ctx, query, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s, c.id, c.name, c.slug, c.is_active
		FROM products p JOIN categories c ON p.category_id = c.id
		WHERE p.slug = $1`, productColumns)

	var p models.Product
	var cat models.Category
	var imagesRaw []byte
	err := config.DB.QueryRow(ctx, query, slug).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.SalePrice,
		&p.StockQuantity, &p.SKU, &imagesRaw, &p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&cat.ID, &cat.Name, &cat.Slug, &cat.IsActive)
	if err != nil {
		return nil, err
	}
	p.Images = decodeImages(imagesRaw)
	p.Category = &cat
	return &p, nil
}

// FindByIDs resolves cart entries against live products. Missing ids are
// simply absent from the result, never an error.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int) (map[int]models.Product, error) {
	products := map[int]models.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	query := fmt.Sprintf("SELECT %s FROM products p WHERE p.id = ANY($1)", productColumns)
	rows, err := config.DB.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

// AdminList pages through all products regardless of is_active, newest first.
func (r *ProductRepository) AdminList(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s, c.id, c.name, c.slug, c.is_active
		FROM products p JOIN categories c ON p.category_id = c.id
		ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`, productColumns)

	rows, err := config.DB.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var cat models.Category
		var imagesRaw []byte
		err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.SalePrice,
			&p.StockQuantity, &p.SKU, &imagesRaw, &p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&cat.ID, &cat.Name, &cat.Slug, &cat.IsActive)
		if err != nil {
			return nil, 0, err
		}
		p.Images = decodeImages(imagesRaw)
		p.Category = &cat
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (category_id, name, slug, description, price, sale_price,
			stock_quantity, sku, images, is_featured, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		product.CategoryID, product.Name, product.Slug, product.Description,
		product.Price, product.SalePrice, product.StockQuantity, product.SKU,
		encodeImages(product.Images), product.IsFeatured, product.IsActive, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `UPDATE products SET category_id = $1, name = $2, slug = $3, description = $4,
		price = $5, sale_price = $6, stock_quantity = $7, sku = $8, images = $9,
		is_featured = $10, is_active = $11, updated_at = $12 WHERE id = $13`
	_, err := config.DB.Exec(ctx, query,
		product.CategoryID, product.Name, product.Slug, product.Description,
		product.Price, product.SalePrice, product.StockQuantity, product.SKU,
		encodeImages(product.Images), product.IsFeatured, product.IsActive, time.Now(), product.ID)
	return err
}

// Delete deactivates a product rather than removing the row; order items keep
// a valid reference.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx,
		"UPDATE products SET is_active = false, updated_at = $1 WHERE id = $2", time.Now(), id)
	return err
}
