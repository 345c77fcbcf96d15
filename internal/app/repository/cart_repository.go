package repository

import (
	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(item *model.CartItem) error
	FindByUserID(userID uint) ([]model.CartItem, error)
	FindByIDAndUserID(id, userID uint) (*model.CartItem, error)
	FindByUserAndProduct(userID, productID uint) (*model.CartItem, error)
	Update(item *model.CartItem) error
	Delete(id, userID uint) (int64, error)
	DeleteByUserID(userID uint) error
	CountByUserID(userID uint) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"user_id":      item.UserID,
	})
	return nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by user in database", map[string]interface{}{
		"user_id": userID,
	})

	var items []model.CartItem
	if err := r.db.
		Preload("Product").
		Preload("Product.Images").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		logger.Error("Failed to find cart items by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart items found in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

func (r *cartRepository) FindByIDAndUserID(id, userID uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by ID in database", map[string]interface{}{
		"cart_item_id": id,
		"user_id":      userID,
	})

	var item model.CartItem
	if err := r.db.
		Preload("Product").
		Preload("Product.Images").
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		logger.Debug("Cart item not found in database", map[string]interface{}{
			"cart_item_id": id,
			"user_id":      userID,
		})
		return nil, err
	}

	return &item, nil
}

func (r *cartRepository) FindByUserAndProduct(userID, productID uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by user and product in database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	var item model.CartItem
	if err := r.db.
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepository) Update(item *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}

	logger.Debug("Cart item updated in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	return nil
}

// Delete removes the cart line only when it belongs to the given user
// and reports how many rows matched.
func (r *cartRepository) Delete(id, userID uint) (int64, error) {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
		"user_id":      userID,
	})

	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete cart item from database", result.Error, map[string]interface{}{
			"cart_item_id": id,
			"user_id":      userID,
		})
		return 0, result.Error
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_item_id":  id,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *cartRepository) DeleteByUserID(userID uint) error {
	logger.Debug("Clearing cart in database", map[string]interface{}{
		"user_id": userID,
	})

	if err := r.db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Debug("Cart cleared in database", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

func (r *cartRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.CartItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count cart items in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return count, nil
}
