package controllers

import (
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"shophub/models"
	"shophub/repositories"
)

type OrderController struct {
	orders *repositories.OrderRepository
}

func NewOrderController() *OrderController {
	return &OrderController{orders: repositories.NewOrderRepository()}
}

func getPaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func paginated(message string, data interface{}, page, limit, total int) models.PaginationResponse {
	return models.PaginationResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}
}

// @Summary Get my orders
// @Description Paginated order history for the authenticated user
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /orders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetInt("user_id")
	page, limit := getPaginationParams(c, 10)

	orders, total, err := ctrl.orders.ListByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve orders"})
		return
	}

	c.JSON(200, paginated("Orders retrieved successfully", orders, page, limit, total))
}

// @Summary Get order by ID
// @Description Order detail with line items, scoped to the requesting user
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	order, err := ctrl.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(404, gin.H{"success": false, "message": "Order not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve order"})
		return
	}

	if order.UserID != c.GetInt("user_id") {
		c.JSON(403, gin.H{"success": false, "message": "Access denied"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Order retrieved successfully", "data": order})
}
