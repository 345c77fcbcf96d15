package service

import (
	"errors"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidShippingCharge = errors.New("shipping charge must not be negative")
)

// ShippingService exposes the store-wide shipping charge. The charge is
// a singleton: admins may edit it but never add or remove rows.
type ShippingService interface {
	GetCharge() (*model.Shipping, error)
	UpdateCharge(charge decimal.Decimal) (*model.Shipping, error)
}

type shippingService struct {
	shippingRepo repository.ShippingRepository
}

func NewShippingService(shippingRepo repository.ShippingRepository) ShippingService {
	return &shippingService{shippingRepo: shippingRepo}
}

func (s *shippingService) GetCharge() (*model.Shipping, error) {
	return s.shippingRepo.Get()
}

func (s *shippingService) UpdateCharge(charge decimal.Decimal) (*model.Shipping, error) {
	if charge.IsNegative() {
		logger.Warn("Shipping charge update rejected: negative value", map[string]interface{}{
			"charge": charge.String(),
		})
		return nil, ErrInvalidShippingCharge
	}
	return s.shippingRepo.UpdateCharge(charge)
}
