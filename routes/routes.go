package routes

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shophub/config"
	"shophub/controllers"
	"shophub/middleware"
	"shophub/repositories"
	"shophub/services"
)

func SetupRoutes(router *gin.Engine) {
	productRepo := repositories.NewProductRepository()
	orderRepo := repositories.NewOrderRepository()

	var cartStore services.CartStore
	if config.RedisClient != nil {
		ttl := time.Duration(config.AppConfig.CartTTLHours) * time.Hour
		cartStore = services.NewRedisCartStore(config.RedisClient, ttl)
	} else {
		log.Println("Warning: using in-memory cart store, carts will not survive restarts")
		cartStore = services.NewMemoryCartStore()
	}

	mailer, err := services.NewMailer()
	if err != nil {
		log.Println("Warning: mailer disabled:", err)
	}

	cartSvc := services.NewCartService(cartStore, productRepo)
	checkoutSvc := services.NewCheckoutService(productRepo, orderRepo, cartSvc, checkoutMailer(mailer),
		config.AppConfig.TaxRate, config.AppConfig.ShippingFee)

	authCtrl := controllers.NewAuthController()
	productCtrl := controllers.NewProductController(services.NewCatalogService())
	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc, cartSvc)
	orderCtrl := controllers.NewOrderController()
	adminProductCtrl := controllers.NewAdminProductController()
	adminCategoryCtrl := controllers.NewAdminCategoryController()
	adminOrderCtrl := controllers.NewAdminOrderController()
	adminDashboardCtrl := controllers.NewAdminDashboardController()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)

	router.GET("/", productCtrl.Home)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:slug", productCtrl.GetProductBySlug)
	router.GET("/categories", productCtrl.GetAllCategories)

	cart := router.Group("/cart")
	cart.Use(middleware.CartSessionMiddleware())
	{
		cart.GET("", cartCtrl.View)
		cart.POST("/add/:id", cartCtrl.Add)
		cart.PUT("/update/:id", cartCtrl.Update)
		cart.DELETE("/remove/:id", cartCtrl.Remove)
		cart.DELETE("/clear", cartCtrl.Clear)
	}

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)

		checkout := auth.Group("/checkout")
		checkout.Use(middleware.CartSessionMiddleware())
		{
			checkout.GET("", checkoutCtrl.GetQuote)
			checkout.POST("/process", checkoutCtrl.Process)
		}

		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrderByID)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", adminDashboardCtrl.GetDashboard)

		admin.GET("/products", adminProductCtrl.List)
		admin.POST("/products", adminProductCtrl.Create)
		admin.PATCH("/products/:id", adminProductCtrl.Update)
		admin.DELETE("/products/:id", adminProductCtrl.Delete)

		admin.GET("/categories", adminCategoryCtrl.List)
		admin.POST("/categories", adminCategoryCtrl.Create)
		admin.PATCH("/categories/:id", adminCategoryCtrl.Update)
		admin.DELETE("/categories/:id", adminCategoryCtrl.Delete)

		admin.GET("/orders", adminOrderCtrl.GetAllOrders)
		admin.GET("/orders/:id", adminOrderCtrl.GetOrderByID)
		admin.PATCH("/orders/:id/status", adminOrderCtrl.UpdateOrderStatus)
	}

	router.Static("/uploads", config.AppConfig.UploadDir)
}

// checkoutMailer keeps the nil interface check in one place: a nil *Mailer
// inside a non-nil interface would dodge the service's nil guard.
func checkoutMailer(m *services.Mailer) services.ConfirmationMailer {
	if m == nil {
		return nil
	}
	return m
}
