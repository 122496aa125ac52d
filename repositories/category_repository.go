package repositories

import (
	"context"
	"time"

	"shophub/config"
	"shophub/models"
)

type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// ListActive returns active categories with their live product counts,
// the storefront sidebar shape.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.description, c.image, c.is_active, c.created_at, c.updated_at,
			COUNT(p.id) FILTER (WHERE p.is_active = true)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE c.is_active = true
		GROUP BY c.id
		ORDER BY c.name
	`
	return r.queryCategories(ctx, query)
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.description, c.image, c.is_active, c.created_at, c.updated_at,
			COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`
	return r.queryCategories(ctx, query)
}

func (r *CategoryRepository) queryCategories(ctx context.Context, query string) ([]models.Category, error) {
	rows, err := config.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Image,
			&cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt, &cat.ProductCount)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int) (*models.Category, error) {
	query := `SELECT id, name, slug, description, image, is_active, created_at, updated_at
		FROM categories WHERE id = $1`

	var cat models.Category
	err := config.DB.QueryRow(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.Slug,
		&cat.Description, &cat.Image, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, description, image, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		cat.Name, cat.Slug, cat.Description, cat.Image, cat.IsActive, now, now,
	).Scan(&cat.ID, &cat.CreatedAt, &cat.UpdatedAt)
}

func (r *CategoryRepository) Update(ctx context.Context, cat *models.Category) error {
	query := `UPDATE categories SET name = $1, slug = $2, description = $3, image = $4,
		is_active = $5, updated_at = $6 WHERE id = $7`
	_, err := config.DB.Exec(ctx, query,
		cat.Name, cat.Slug, cat.Description, cat.Image, cat.IsActive, time.Now(), cat.ID)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx,
		"UPDATE categories SET is_active = false, updated_at = $1 WHERE id = $2", time.Now(), id)
	return err
}
