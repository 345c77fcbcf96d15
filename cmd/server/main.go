package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asifdev/trendcart-backend/config"
	"github.com/asifdev/trendcart-backend/internal/app/controller"
	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/internal/app/service"
	"github.com/asifdev/trendcart-backend/internal/db"
	"github.com/asifdev/trendcart-backend/internal/middleware"
	"github.com/asifdev/trendcart-backend/internal/router"
	"github.com/asifdev/trendcart-backend/internal/scheduler"
	"github.com/asifdev/trendcart-backend/internal/storage"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"github.com/asifdev/trendcart-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting TrendCart Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis is best-effort: without it logout revocation degrades but
	// the server stays up
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	shippingRepo := repository.NewShippingRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(userRepo, &cfg.JWT)
	addressService := service.NewAddressService(addressRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	cartService := service.NewCartService(cartRepo, productRepo, shippingRepo)
	shippingService := service.NewShippingService(shippingRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, addressRepo, shippingRepo, db.GetDB())

	// Storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Controllers
	authController := controller.NewAuthController(authService)
	catalogController := controller.NewCatalogController(productService, cartService)
	categoryController := controller.NewCategoryController(categoryService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	adminOrderController := controller.NewAdminOrderController(orderService)
	addressController := controller.NewAddressController(addressService)
	shippingController := controller.NewShippingController(shippingService)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r := router.NewRouter(
		authController,
		catalogController,
		categoryController,
		productController,
		cartController,
		orderController,
		adminOrderController,
		addressController,
		shippingController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Best seller flags refresh nightly
	bestSellerScheduler := scheduler.NewBestSellerScheduler(productRepo)
	if err := bestSellerScheduler.Start(); err != nil {
		logger.Error("Failed to start best seller scheduler", err)
	}
	defer bestSellerScheduler.Stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
