package repository

import (
	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShippingRepository manages the single store-wide shipping charge row.
type ShippingRepository interface {
	Get() (*model.Shipping, error)
	UpdateCharge(charge decimal.Decimal) (*model.Shipping, error)
}

type shippingRepository struct {
	db *gorm.DB
}

func NewShippingRepository(db *gorm.DB) ShippingRepository {
	return &shippingRepository{db: db}
}

func (r *shippingRepository) Get() (*model.Shipping, error) {
	logger.Debug("Fetching shipping charge from database", nil)

	var shipping model.Shipping
	if err := r.db.Order("id ASC").First(&shipping).Error; err != nil {
		logger.Error("Failed to fetch shipping charge from database", err, nil)
		return nil, err
	}

	return &shipping, nil
}

func (r *shippingRepository) UpdateCharge(charge decimal.Decimal) (*model.Shipping, error) {
	logger.Debug("Updating shipping charge in database", map[string]interface{}{
		"charge": charge.String(),
	})

	shipping, err := r.Get()
	if err != nil {
		return nil, err
	}

	shipping.Charge = charge
	if err := r.db.Save(shipping).Error; err != nil {
		logger.Error("Failed to update shipping charge in database", err, map[string]interface{}{
			"charge": charge.String(),
		})
		return nil, err
	}

	logger.Info("Shipping charge updated", map[string]interface{}{
		"charge": charge.String(),
	})
	return shipping, nil
}
