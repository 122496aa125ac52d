package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shophub/config"
	"shophub/repositories"
)

type AdminDashboardController struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewAdminDashboardController() *AdminDashboardController {
	return &AdminDashboardController{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
	}
}

// @Summary Dashboard
// @Description Store-wide counters, paid revenue, recent orders and newest products (Admin)
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard [get]
func (ctrl *AdminDashboardController) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var totalUsers, totalProducts, totalCategories, totalOrders int
	var revenue decimal.Decimal

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM users", &totalUsers},
		{"SELECT COUNT(*) FROM products", &totalProducts},
		{"SELECT COUNT(*) FROM categories", &totalCategories},
		{"SELECT COUNT(*) FROM orders", &totalOrders},
	}
	for _, count := range counts {
		if err := config.DB.QueryRow(ctx, count.query).Scan(count.dest); err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to load dashboard"})
			return
		}
	}

	err := config.DB.QueryRow(ctx,
		"SELECT COALESCE(SUM(total), 0) FROM orders WHERE payment_status = 'paid'").Scan(&revenue)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load revenue"})
		return
	}

	recentOrders, _, err := ctrl.orders.AdminList(ctx, "", 1, 5)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load recent orders"})
		return
	}

	topProducts, err := ctrl.products.Featured(ctx, 3)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load top products"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Dashboard retrieved successfully",
		"data": gin.H{
			"total_users":      totalUsers,
			"total_products":   totalProducts,
			"total_categories": totalCategories,
			"total_orders":     totalOrders,
			"revenue":          revenue,
			"recent_orders":    recentOrders,
			"top_products":     topProducts,
		},
	})
}
