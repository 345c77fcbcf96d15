package repository

import (
	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.Address) error
	FindByUserID(userID uint) ([]model.Address, error)
	FindByIDAndUserID(id, userID uint) (*model.Address, error)
	Update(address *model.Address) error
	Delete(id, userID uint) (int64, error)
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.Address) error {
	logger.Debug("Creating address in database", map[string]interface{}{
		"user_id": address.UserID,
		"city":    address.City,
	})

	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"user_id": address.UserID,
		})
		return err
	}

	logger.Debug("Address created in database", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    address.UserID,
	})
	return nil
}

func (r *addressRepository) FindByUserID(userID uint) ([]model.Address, error) {
	logger.Debug("Finding addresses by user in database", map[string]interface{}{
		"user_id": userID,
	})

	var addresses []model.Address
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error; err != nil {
		logger.Error("Failed to find addresses by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Addresses found in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(addresses),
	})
	return addresses, nil
}

func (r *addressRepository) FindByIDAndUserID(id, userID uint) (*model.Address, error) {
	logger.Debug("Finding address by ID in database", map[string]interface{}{
		"address_id": id,
		"user_id":    userID,
	})

	var address model.Address
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).
		First(&address).Error; err != nil {
		logger.Debug("Address not found in database", map[string]interface{}{
			"address_id": id,
			"user_id":    userID,
		})
		return nil, err
	}

	return &address, nil
}

func (r *addressRepository) Update(address *model.Address) error {
	logger.Debug("Updating address in database", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    address.UserID,
	})

	if err := r.db.Save(address).Error; err != nil {
		logger.Error("Failed to update address in database", err, map[string]interface{}{
			"address_id": address.ID,
		})
		return err
	}

	logger.Debug("Address updated in database", map[string]interface{}{
		"address_id": address.ID,
	})
	return nil
}

// Delete removes the address only when it belongs to the given user.
// It returns the number of rows deleted so callers can tell a missing
// address apart from a successful delete.
func (r *addressRepository) Delete(id, userID uint) (int64, error) {
	logger.Debug("Deleting address from database", map[string]interface{}{
		"address_id": id,
		"user_id":    userID,
	})

	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Address{})
	if result.Error != nil {
		logger.Error("Failed to delete address from database", result.Error, map[string]interface{}{
			"address_id": id,
			"user_id":    userID,
		})
		return 0, result.Error
	}

	logger.Debug("Address deleted from database", map[string]interface{}{
		"address_id":    id,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
