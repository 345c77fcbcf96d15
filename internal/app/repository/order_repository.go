package repository

import (
	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderFilter struct {
	Status *model.OrderStatus
	UserID *uint
	Limit  int
	Offset int
}

type OrderRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) OrderRepository
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByIDAndUserID(id, userID uint) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindWithFilter(filter OrderFilter) ([]model.Order, error)
	// TransitionStatus moves the order from one status to another and
	// appends a history row; it reports whether the guarded update won.
	TransitionStatus(id uint, from, to model.OrderStatus) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"user_id":     order.UserID,
		"total_price": order.TotalPrice.String(),
		"item_count":  len(order.Items),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id": order.UserID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
	})
	return nil
}

func (r *orderRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Order{}).
		Preload("Items").
		Preload("Address").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_histories.created_at ASC")
		})
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.baseQuery().Preload("User").First(&order, id).Error; err != nil {
		logger.Debug("Order not found in database", map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) FindByIDAndUserID(id, userID uint) (*model.Order, error) {
	logger.Debug("Finding order by ID and user in database", map[string]interface{}{
		"order_id": id,
		"user_id":  userID,
	})

	var order model.Order
	if err := r.baseQuery().
		Where("orders.id = ? AND orders.user_id = ?", id, userID).
		First(&order).Error; err != nil {
		logger.Debug("Order not found for user in database", map[string]interface{}{
			"order_id": id,
			"user_id":  userID,
		})
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by user in database", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	if err := r.baseQuery().
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Orders found in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (r *orderRepository) FindWithFilter(filter OrderFilter) ([]model.Order, error) {
	logger.Debug("Finding orders with filter", map[string]interface{}{
		"status":  filter.Status,
		"user_id": filter.UserID,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})

	query := r.baseQuery().Preload("User")

	if filter.Status != nil {
		query = query.Where("orders.status = ?", *filter.Status)
	}
	if filter.UserID != nil {
		query = query.Where("orders.user_id = ?", *filter.UserID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var orders []model.Order
	if err := query.Order("orders.created_at DESC").Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders with filter", err, nil)
		return nil, err
	}

	logger.Debug("Orders found with filter", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

// TransitionStatus performs a guarded status move. The WHERE clause pins
// the expected current status so two concurrent transitions cannot both
// win; the loser sees zero rows affected and no history is written.
func (r *orderRepository) TransitionStatus(id uint, from, to model.OrderStatus) (bool, error) {
	logger.Debug("Transitioning order status in database", map[string]interface{}{
		"order_id": id,
		"from":     from,
		"to":       to,
	})

	var moved bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		history := model.OrderStatusHistory{
			OrderID:    id,
			FromStatus: from,
			ToStatus:   to,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		moved = true
		return nil
	})
	if err != nil {
		logger.Error("Failed to transition order status in database", err, map[string]interface{}{
			"order_id": id,
			"from":     from,
			"to":       to,
		})
		return false, err
	}

	logger.Debug("Order status transition attempted", map[string]interface{}{
		"order_id": id,
		"from":     from,
		"to":       to,
		"moved":    moved,
	})
	return moved, nil
}
