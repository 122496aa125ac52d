package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shophub/middleware"
	"shophub/models"
	"shophub/services"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

func productIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return 0, false
	}
	return id, true
}

// @Summary View cart
// @Description Resolve the session cart against live products with line subtotals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) View(c *gin.Context) {
	view, err := ctrl.carts.View(c.Request.Context(), middleware.CartSessionID(c))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart retrieved successfully", "data": view})
}

// @Summary Add to cart
// @Description Add a product; quantity accumulates onto an existing entry
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.CartQuantityRequest false "Quantity (default 1)"
// @Success 200 {object} models.Response
// @Router /cart/add/{id} [post]
func (ctrl *CartController) Add(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	req := models.CartQuantityRequest{Quantity: 1}
	c.ShouldBind(&req)
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	if err := ctrl.carts.Add(c.Request.Context(), middleware.CartSessionID(c), productID, req.Quantity); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to add to cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product added to cart successfully"})
}

// @Summary Update cart entry
// @Description Set a quantity verbatim; zero or negative removes the entry
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.CartQuantityRequest true "Quantity"
// @Success 200 {object} models.Response
// @Router /cart/update/{id} [put]
func (ctrl *CartController) Update(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req models.CartQuantityRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if err := ctrl.carts.Update(c.Request.Context(), middleware.CartSessionID(c), productID, req.Quantity); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart updated successfully"})
}

// @Summary Remove from cart
// @Description Delete an entry; removing an absent product succeeds
// @Tags Cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/remove/{id} [delete]
func (ctrl *CartController) Remove(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.carts.Remove(c.Request.Context(), middleware.CartSessionID(c), productID); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to remove from cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product removed from cart"})
}

// @Summary Clear cart
// @Description Empty the session cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/clear [delete]
func (ctrl *CartController) Clear(c *gin.Context) {
	if err := ctrl.carts.Clear(c.Request.Context(), middleware.CartSessionID(c)); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to clear cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart cleared successfully"})
}
