// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/artwithshyz/storefront/internal/config"
	"github.com/artwithshyz/storefront/internal/handlers"
	"github.com/artwithshyz/storefront/internal/middleware"
	"github.com/artwithshyz/storefront/internal/services"
)

// SetupRouter wires services, handlers and middleware into the HTTP API.
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Services
	notificationService := services.NewNotificationService(cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	paymentService := services.NewPaymentService(db, cfg)
	authService := services.NewAuthService(db, cfg, notificationService)
	productService := services.NewProductService(db, storageService)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, paymentService, notificationService)
	adminService := services.NewAdminService(db, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, orderService)
	adminHandler := handlers.NewAdminHandler(adminService, orderService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Locally stored uploads; in production assets are served from the CDN
	r.Static("/uploads", "./uploads")

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.AuthRateLimit(), authHandler.Register)
		auth.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
		auth.POST("/forgot-password", middleware.AuthRateLimit(), authHandler.ForgotPassword)
		auth.POST("/reset-password", middleware.AuthRateLimit(), authHandler.ResetPassword)
		auth.GET("/verify-email/:token", authHandler.VerifyEmail)
		auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("/:id/reviews", middleware.AuthRequired(), productHandler.AddReview)
	}

	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:productId", cartHandler.UpdateItem)
		cart.DELETE("/items/:productId", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.ClearCart)
	}

	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("", orderHandler.PlaceOrder)
		orders.GET("", orderHandler.ListMyOrders)
		orders.GET("/:id", orderHandler.GetMyOrder)
	}

	payments := api.Group("/payments", middleware.AuthRequired())
	{
		payments.POST("/orders/:orderId/retry", paymentHandler.RetryPayment)
		payments.POST("/confirm", paymentHandler.ConfirmPayment)
	}

	admin := api.Group("/admin", middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)
		admin.GET("/analytics", adminHandler.GetAnalytics)
		admin.GET("/orders", adminHandler.ListOrders)
		admin.GET("/orders/export", adminHandler.ExportOrders)
		admin.GET("/orders/:id", adminHandler.GetOrder)
		admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
		admin.GET("/customers", adminHandler.ListCustomers)
		admin.GET("/customers/export", adminHandler.ExportCustomers)
		admin.GET("/customers/:id", adminHandler.GetCustomer)
		admin.PUT("/customers/:id/status", adminHandler.UpdateCustomerStatus)
		admin.GET("/products/low-stock", adminHandler.GetLowStockProducts)
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.POST("/products/images", middleware.UploadRateLimit(), productHandler.UploadImage)
	}

	return r, nil
}
