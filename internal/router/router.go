package router

import (
	"github.com/asifdev/trendcart-backend/config"
	"github.com/asifdev/trendcart-backend/internal/app/controller"
	"github.com/asifdev/trendcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController       *controller.AuthController
	catalogController    *controller.CatalogController
	categoryController   *controller.CategoryController
	productController    *controller.ProductController
	cartController       *controller.CartController
	orderController      *controller.OrderController
	adminOrderController *controller.AdminOrderController
	addressController    *controller.AddressController
	shippingController   *controller.ShippingController
	uploadController     *controller.UploadController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	catalogController *controller.CatalogController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	adminOrderController *controller.AdminOrderController,
	addressController *controller.AddressController,
	shippingController *controller.ShippingController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		catalogController:    catalogController,
		categoryController:   categoryController,
		productController:    productController,
		cartController:       cartController,
		orderController:      orderController,
		adminOrderController: adminOrderController,
		addressController:    addressController,
		shippingController:   shippingController,
		uploadController:     uploadController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "TrendCart API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
			auth.POST("/change-password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
		}

		// Public storefront
		v1.GET("/home", r.authMiddleware.OptionalAuthenticate(), r.catalogController.Home)
		v1.GET("/search", r.catalogController.Search)
		v1.GET("/search/suggest", r.catalogController.Suggest)
		v1.GET("/shipping", r.shippingController.GetCharge)

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/:id", r.categoryController.GetCategory)
		}
		v1.GET("/subcategories", r.categoryController.ListSubCategories)

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.GET("/:id/related", r.productController.GetRelatedProducts)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.GET("/count", r.cartController.CountItems)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		v1.GET("/checkout", r.authMiddleware.Authenticate(), r.orderController.Checkout)

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("", r.orderController.PlaceOrder)
			orders.POST("/:id/cancel", r.orderController.CancelOrder)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.authMiddleware.Authenticate())
		{
			addresses.GET("", r.addressController.ListAddresses)
			addresses.POST("", r.addressController.CreateAddress)
			addresses.PUT("/:id", r.addressController.UpdateAddress)
			addresses.DELETE("/:id", r.addressController.DeleteAddress)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.GET("/orders", r.adminOrderController.ListOrders)
			admin.POST("/orders/bulk", r.adminOrderController.BulkAction)
			admin.GET("/orders/export", r.adminOrderController.ExportOrders)

			admin.PUT("/shipping", r.shippingController.UpdateCharge)

			admin.POST("/categories", r.categoryController.CreateCategory)
			admin.PUT("/categories/:id", r.categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", r.categoryController.DeleteCategory)

			admin.POST("/subcategories", r.categoryController.CreateSubCategory)
			admin.PUT("/subcategories/:id", r.categoryController.UpdateSubCategory)
			admin.DELETE("/subcategories/:id", r.categoryController.DeleteSubCategory)

			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)

			admin.GET("/slider-images", r.productController.ListSliderImages)
			admin.POST("/slider-images", r.productController.CreateSliderImage)
			admin.DELETE("/slider-images/:id", r.productController.DeleteSliderImage)

			admin.POST("/upload/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
