package services

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5"

	"shophub/models"
	"shophub/repositories"
)

type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		products:   repositories.NewProductRepository(),
		categories: repositories.NewCategoryRepository(),
	}
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.ListActive(ctx)
}

// Search runs the catalog query with page bounds normalized.
func (s *CatalogService) Search(ctx context.Context, filter models.ProductFilter) (*models.PaginationResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 12
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	products, total, err := s.products.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.PaginationResponse{
		Success: true,
		Message: "Products retrieved successfully",
		Data:    products,
		Meta: models.PaginationMeta{
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

type HomePage struct {
	FeaturedProducts []models.Product           `json:"featured_products"`
	Categories       []models.Category          `json:"categories"`
	Products         *models.PaginationResponse `json:"products"`
}

// Home assembles the storefront landing surface: featured picks, active
// categories with counts, and the filtered product grid.
func (s *CatalogService) Home(ctx context.Context, filter models.ProductFilter) (*HomePage, error) {
	featured, err := s.products.Featured(ctx, 8)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &HomePage{
		FeaturedProducts: featured,
		Categories:       categories,
		Products:         page,
	}, nil
}

type ProductDetail struct {
	Product         *models.Product  `json:"product"`
	RelatedProducts []models.Product `json:"related_products"`
}

// Detail loads an active product by slug with up to 4 related products from
// the same category.
func (s *CatalogService) Detail(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		// inactive products are invisible on the storefront
		return nil, pgx.ErrNoRows
	}

	related, err := s.products.Related(ctx, product.CategoryID, product.ID, 4)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{Product: product, RelatedProducts: related}, nil
}
