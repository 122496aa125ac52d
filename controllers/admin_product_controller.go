package controllers

import (
	"errors"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"shophub/config"
	"shophub/libs"
	"shophub/models"
	"shophub/repositories"
	"shophub/utils"
)

type AdminProductController struct {
	products *repositories.ProductRepository
}

func NewAdminProductController() *AdminProductController {
	return &AdminProductController{products: repositories.NewProductRepository()}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// collectImages saves uploaded files and keeps any existing paths the form
// carried over. Uploads go to Cloudinary when configured, local disk
// otherwise.
func collectImages(c *gin.Context) ([]string, error) {
	images := c.PostFormArray("existing_images")
	if images == nil {
		images = []string{}
	}

	form, err := c.MultipartForm()
	if err != nil {
		return images, nil // no multipart body, keep what we have
	}

	for _, file := range form.File["images"] {
		path, err := utils.SaveUploadedImage(c, file, "products")
		if err != nil {
			return nil, err
		}

		if libs.Configured() {
			url, err := libs.UploadImage(filepath.Join(config.AppConfig.UploadDir, path), "products")
			if err != nil {
				return nil, err
			}
			path = url
		}
		images = append(images, path)
	}
	return images, nil
}

// @Summary List products (admin)
// @Description All products regardless of active flag, newest first
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /admin/products [get]
func (ctrl *AdminProductController) List(c *gin.Context) {
	page, limit := getPaginationParams(c, 10)

	products, total, err := ctrl.products.AdminList(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve products"})
		return
	}

	c.JSON(200, paginated("Products retrieved successfully", products, page, limit, total))
}

// @Summary Create product
// @Description Create a product; slug derives from the name
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param category_id formData int true "Category ID"
// @Param description formData string true "Description"
// @Param price formData number true "Price"
// @Param sale_price formData number false "Sale price"
// @Param stock_quantity formData int true "Stock quantity"
// @Param sku formData string true "SKU"
// @Param images formData file false "Images"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *AdminProductController) Create(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		c.JSON(400, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	var salePrice *decimal.Decimal
	if req.SalePrice != "" {
		sp, err := decimal.NewFromString(req.SalePrice)
		if err != nil || sp.IsNegative() {
			c.JSON(400, gin.H{"success": false, "message": "Invalid sale price"})
			return
		}
		salePrice = &sp
	}

	images, err := collectImages(c)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Image upload failed", "error": err.Error()})
		return
	}

	product := &models.Product{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Slug:          utils.Slugify(req.Name),
		Description:   req.Description,
		Price:         price,
		SalePrice:     salePrice,
		StockQuantity: req.StockQuantity,
		SKU:           req.SKU,
		Images:        images,
		IsFeatured:    req.IsFeatured,
		IsActive:      req.IsActive,
	}

	if err := ctrl.products.Create(c.Request.Context(), product); err != nil {
		if isUniqueViolation(err) {
			c.JSON(400, gin.H{"success": false, "message": "SKU or slug already exists"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Product created successfully", "data": product})
}

// @Summary Update product
// @Description Partial update; omitted fields keep their values
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *AdminProductController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	product, err := ctrl.products.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(404, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve product"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if req.Name != "" {
		product.Name = req.Name
		product.Slug = utils.Slugify(req.Name)
	}
	if req.CategoryID > 0 {
		product.CategoryID = req.CategoryID
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil || price.IsNegative() {
			c.JSON(400, gin.H{"success": false, "message": "Invalid price"})
			return
		}
		product.Price = price
	}
	if req.SalePrice != "" {
		sp, err := decimal.NewFromString(req.SalePrice)
		if err != nil || sp.IsNegative() {
			c.JSON(400, gin.H{"success": false, "message": "Invalid sale price"})
			return
		}
		product.SalePrice = &sp
	}
	if req.StockQuantity != nil && *req.StockQuantity >= 0 {
		product.StockQuantity = *req.StockQuantity
	}
	if req.SKU != "" {
		product.SKU = req.SKU
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	images, err := collectImages(c)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Image upload failed", "error": err.Error()})
		return
	}
	if len(images) > 0 || c.PostFormArray("existing_images") != nil {
		// local files dropped from the image list are removed from disk
		for _, old := range product.Images {
			keep := false
			for _, img := range images {
				if img == old {
					keep = true
					break
				}
			}
			if !keep {
				utils.DeleteUploadedFile(old)
			}
		}
		product.Images = images
	}

	if err := ctrl.products.Update(c.Request.Context(), product); err != nil {
		if isUniqueViolation(err) {
			c.JSON(400, gin.H{"success": false, "message": "SKU or slug already exists"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product updated successfully", "data": product})
}

// @Summary Delete product
// @Description Deactivate a product; existing order items keep their reference
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [delete]
func (ctrl *AdminProductController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	if err := ctrl.products.Delete(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product deleted successfully", "data": gin.H{"id": id}})
}
