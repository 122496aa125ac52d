package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"shophub/models"
	"shophub/services"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// parseProductFilter reads catalog filters off the query string. Invalid
// values are treated as "no filter", never an error.
func parseProductFilter(c *gin.Context, defaultLimit int) models.ProductFilter {
	filter := models.ProductFilter{
		Search: c.Query("search"),
		Sort:   c.DefaultQuery("sort", models.SortNewest),
	}

	for _, raw := range c.QueryArray("categories") {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			filter.CategoryIDs = append(filter.CategoryIDs, id)
		}
	}
	// single-category form used by the product listing page
	if raw := c.Query("category"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			filter.CategoryIDs = append(filter.CategoryIDs, id)
		}
	}

	if raw := c.Query("min_price"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &d
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &d
		}
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	return filter
}

// @Summary Home
// @Description Storefront landing data: featured products, categories, filtered product grid
// @Tags Catalog
// @Produce json
// @Param categories query []int false "Category ids"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param sort query string false "Sort key" Enums(newest, price_asc, price_desc, name_asc, name_desc)
// @Param page query int false "Page number"
// @Success 200 {object} models.Response
// @Router / [get]
func (ctrl *ProductController) Home(c *gin.Context) {
	page, err := ctrl.catalog.Home(c.Request.Context(), parseProductFilter(c, 12))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load home page"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Home retrieved successfully", "data": page})
}

// @Summary Get all products
// @Description Paginated catalog listing with filters
// @Tags Catalog
// @Produce json
// @Param category query int false "Category id"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param search query string false "Substring match on name or description"
// @Param sort query string false "Sort key" Enums(newest, price_asc, price_desc, name_asc, name_desc)
// @Param page query int false "Page number"
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	response, err := ctrl.catalog.Search(c.Request.Context(), parseProductFilter(c, 12))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve products"})
		return
	}

	c.JSON(200, response)
}

// @Summary Get product by slug
// @Description Product detail with related products
// @Tags Catalog
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{slug} [get]
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	detail, err := ctrl.catalog.Detail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(404, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve product"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product retrieved successfully", "data": detail})
}

// @Summary Get all categories
// @Description Active categories with product counts
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetAllCategories(c *gin.Context) {
	categories, err := ctrl.catalog.Categories(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve categories"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}
