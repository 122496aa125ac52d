package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shophub/middleware"
	"shophub/models"
	"shophub/repositories"
	"shophub/services"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	carts    *services.CartService
	users    *repositories.UserRepository
}

func NewCheckoutController(checkout *services.CheckoutService, carts *services.CartService) *CheckoutController {
	return &CheckoutController{
		checkout: checkout,
		carts:    carts,
		users:    repositories.NewUserRepository(),
	}
}

// @Summary Checkout quote
// @Description Compute subtotal, tax, shipping and total for the session cart, listing any excluded entries
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout [get]
func (ctrl *CheckoutController) GetQuote(c *gin.Context) {
	cart, err := ctrl.carts.Contents(c.Request.Context(), middleware.CartSessionID(c))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		return
	}

	quote, err := ctrl.checkout.Quote(c.Request.Context(), cart)
	if err != nil {
		if errors.Is(err, services.ErrCartEmpty) {
			c.JSON(400, gin.H{"success": false, "message": "Your cart is empty", "redirect": "/cart"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to compute checkout"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Checkout quote computed", "data": quote})
}

// @Summary Process checkout
// @Description Place an order from the session cart. All-or-nothing: any entry failing the stock check aborts placement.
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Checkout data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout/process [post]
func (ctrl *CheckoutController) Process(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	user, err := ctrl.users.FindByID(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	order, err := ctrl.checkout.PlaceOrder(c.Request.Context(), middleware.CartSessionID(c), user, req)
	if err != nil {
		var stockChanged *services.ErrStockChanged
		var insufficient *repositories.ErrInsufficientStock

		switch {
		case errors.Is(err, services.ErrCartEmpty):
			c.JSON(400, gin.H{"success": false, "message": "Your cart is empty", "redirect": "/cart"})
		case errors.As(err, &stockChanged):
			c.JSON(409, gin.H{
				"success": false,
				"message": stockChanged.Error(),
				"data":    gin.H{"excluded": stockChanged.Excluded},
			})
		case errors.As(err, &insufficient):
			// stock moved between quote and commit; nothing was persisted
			c.JSON(409, gin.H{"success": false, "message": insufficient.Error()})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Failed to place order"})
		}
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Order placed successfully!", "data": order})
}
