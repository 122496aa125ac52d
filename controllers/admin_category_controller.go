package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"shophub/models"
	"shophub/repositories"
	"shophub/utils"
)

type AdminCategoryController struct {
	categories *repositories.CategoryRepository
}

func NewAdminCategoryController() *AdminCategoryController {
	return &AdminCategoryController{categories: repositories.NewCategoryRepository()}
}

func categoryImage(c *gin.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	path, err := utils.SaveUploadedImage(c, file, "categories")
	if err != nil {
		return nil, err
	}
	return &path, nil
}

// @Summary List categories (admin)
// @Description All categories with product counts
// @Tags Admin - Categories
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/categories [get]
func (ctrl *AdminCategoryController) List(c *gin.Context) {
	categories, err := ctrl.categories.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve categories"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// @Summary Create category
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string false "Description"
// @Param image formData file false "Image"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/categories [post]
func (ctrl *AdminCategoryController) Create(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	image, err := categoryImage(c)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Image upload failed", "error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: description,
		Image:       image,
		IsActive:    isActive,
	}

	if err := ctrl.categories.Create(c.Request.Context(), category); err != nil {
		if isUniqueViolation(err) {
			c.JSON(400, gin.H{"success": false, "message": "Category slug already exists"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to create category"})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Category created successfully", "data": category})
}

// @Summary Update category
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories/{id} [patch]
func (ctrl *AdminCategoryController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid category ID"})
		return
	}

	category, err := ctrl.categories.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(404, gin.H{"success": false, "message": "Category not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve category"})
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if req.Name != "" {
		category.Name = req.Name
		category.Slug = utils.Slugify(req.Name)
	}
	if req.Description != "" {
		category.Description = &req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	image, err := categoryImage(c)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Image upload failed", "error": err.Error()})
		return
	}
	if image != nil {
		if category.Image != nil {
			utils.DeleteUploadedFile(*category.Image)
		}
		category.Image = image
	}

	if err := ctrl.categories.Update(c.Request.Context(), category); err != nil {
		if isUniqueViolation(err) {
			c.JSON(400, gin.H{"success": false, "message": "Category slug already exists"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update category"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Category updated successfully", "data": category})
}

// @Summary Delete category
// @Description Deactivate a category; its products stay but disappear from the storefront
// @Tags Admin - Categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Router /admin/categories/{id} [delete]
func (ctrl *AdminCategoryController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid category ID"})
		return
	}

	if err := ctrl.categories.Delete(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete category"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Category deleted successfully", "data": gin.H{"id": id}})
}
