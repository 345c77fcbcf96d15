package db

import (
	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Address{},
		&model.Category{},
		&model.SubCategory{},
		&model.Product{},
		&model.ProductImage{},
		&model.SliderImage{},
		&model.CartItem{},
		&model.Shipping{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderStatusHistory{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedShippingCharge(); err != nil {
		logger.Error("Failed to seed shipping charge", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedShippingCharge creates the singleton shipping charge row. Admins
// edit this row in place; nothing ever adds a second one.
func seedShippingCharge() error {
	var count int64
	if err := DB.Model(&model.Shipping{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Shipping charge already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	shipping := model.Shipping{
		Charge: decimal.NewFromFloat(70.00),
	}
	if err := DB.Create(&shipping).Error; err != nil {
		logger.Error("Failed to create shipping charge", err)
		return err
	}

	logger.Info("Shipping charge seeded successfully", map[string]interface{}{
		"charge": shipping.Charge.StringFixed(2),
	})
	return nil
}
