package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"shophub/models"
	"shophub/repositories"
)

type AdminOrderController struct {
	orders *repositories.OrderRepository
}

func NewAdminOrderController() *AdminOrderController {
	return &AdminOrderController{orders: repositories.NewOrderRepository()}
}

// @Summary Get all orders
// @Description Paginated order list, optionally filtered by status (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Success 200 {object} models.PaginationResponse
// @Router /admin/orders [get]
func (ctrl *AdminOrderController) GetAllOrders(c *gin.Context) {
	page, limit := getPaginationParams(c, 10)

	status := c.Query("status")
	if status == "All" {
		status = ""
	}
	if status != "" {
		if _, err := models.ParseOrderStatus(status); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid status filter"})
			return
		}
	}

	orders, total, err := ctrl.orders.AdminList(c.Request.Context(), status, page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve orders"})
		return
	}

	c.JSON(200, paginated("Orders retrieved successfully", orders, page, limit, total))
}

// @Summary Get order by ID
// @Description Order details with line items (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [get]
func (ctrl *AdminOrderController) GetOrderByID(c *gin.Context) {
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

	c.JSON(200, gin.H{"success": true, "message": "Order retrieved successfully", "data": order})
}

// @Summary Update order status
// @Description Move an order through the status workflow and/or set payment status (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (ctrl *AdminOrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}
	if req.Status == "" && req.PaymentStatus == "" {
		c.JSON(400, gin.H{"success": false, "message": "Status or payment status is required"})
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

	newStatus := order.Status
	if req.Status != "" {
		parsed, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid status"})
			return
		}
		if parsed != order.Status {
			if !order.Status.CanTransitionTo(parsed) {
				c.JSON(400, gin.H{
					"success": false,
					"message": "Invalid status transition from " + string(order.Status) + " to " + string(parsed),
				})
				return
			}
			newStatus = parsed
		}
	}

	newPaymentStatus := order.PaymentStatus
	if req.PaymentStatus != "" {
		parsed, err := models.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid payment status"})
			return
		}
		newPaymentStatus = parsed
	}

	if err := ctrl.orders.UpdateStatus(c.Request.Context(), id, newStatus, newPaymentStatus); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update order status"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Order status updated successfully",
		"data": gin.H{
			"id":             id,
			"status":         newStatus,
			"payment_status": newPaymentStatus,
		},
	})
}
