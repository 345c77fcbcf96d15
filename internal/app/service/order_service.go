package service

import (
	"errors"
	"fmt"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInvalidOrderTransition = errors.New("order status does not allow this transition")
)

// BulkTransitionResult reports which orders a bulk status action moved
// and which it skipped because they were no longer in the expected
// source status.
type BulkTransitionResult struct {
	Updated []uint `json:"updated"`
	Skipped []uint `json:"skipped"`
}

// CheckoutData is what the checkout page renders: the cart contents
// with totals plus the user's saved delivery addresses.
type CheckoutData struct {
	Items     []model.CartItem `json:"items"`
	Summary   CartSummary      `json:"summary"`
	Addresses []model.Address  `json:"addresses"`
}

type OrderService interface {
	Checkout(userID uint) (*CheckoutData, error)
	PlaceOrder(userID, addressID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrder(userID, orderID uint) (*model.Order, error)
	CancelOrder(userID, orderID uint) error
	ListOrders(status *model.OrderStatus) ([]model.Order, error)
	BulkTransition(orderIDs []uint, from, to model.OrderStatus) (*BulkTransitionResult, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	addressRepo  repository.AddressRepository
	shippingRepo repository.ShippingRepository
	db           *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	addressRepo repository.AddressRepository,
	shippingRepo repository.ShippingRepository,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		addressRepo:  addressRepo,
		shippingRepo: shippingRepo,
		db:           db,
	}
}

// Checkout gathers everything the checkout page needs. An empty cart
// has nothing to check out and is rejected.
func (s *orderService) Checkout(userID uint) (*CheckoutData, error) {
	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	charge, err := s.shippingCharge()
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for i := range cartItems {
		subtotal = subtotal.Add(cartItems[i].TotalPrice())
	}

	addresses, err := s.addressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	return &CheckoutData{
		Items: cartItems,
		Summary: CartSummary{
			Subtotal:       subtotal,
			ShippingCharge: charge,
			Total:          subtotal.Add(charge),
		},
		Addresses: addresses,
	}, nil
}

// shippingCharge reads the singleton charge. Until an admin configures
// one, shipping is free.
func (s *orderService) shippingCharge() (decimal.Decimal, error) {
	shipping, err := s.shippingRepo.Get()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return shipping.Charge, nil
}

// PlaceOrder turns the user's cart into a pending order. Stock is taken
// with conditional decrements inside one transaction, so two checkouts
// racing over the last unit cannot both succeed; the loser rolls back
// with ErrInsufficientStock and keeps its cart intact. Each order line
// snapshots the product name and price as sold.
func (s *orderService) PlaceOrder(userID, addressID uint) (*model.Order, error) {
	logger.Info("Placing order from cart", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	address, err := s.addressRepo.FindByIDAndUserID(addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot place order: address not found", map[string]interface{}{
				"user_id":    userID,
				"address_id": addressID,
			})
			return nil, ErrAddressNotFound
		}
		return nil, err
	}

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Cannot place order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	charge, err := s.shippingCharge()
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order placement, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	subtotal := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(cartItems))

	for _, cartItem := range cartItems {
		result := tx.Model(&model.Product{}).
			Where("id = ? AND quantity_available >= ?", cartItem.ProductID, cartItem.Quantity).
			Update("quantity_available", gorm.Expr("quantity_available - ?", cartItem.Quantity))
		if result.Error != nil {
			tx.Rollback()
			logger.Error("Failed to reserve stock during order placement", result.Error, map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
			})
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			logger.Warn("Order placement failed: insufficient stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
				"requested":  cartItem.Quantity,
			})
			return nil, ErrInsufficientStock
		}

		subtotal = subtotal.Add(cartItem.TotalPrice())
		orderItems = append(orderItems, model.OrderItem{
			ProductID:   cartItem.ProductID,
			ProductName: cartItem.Product.Name,
			Price:       cartItem.Product.Price,
			Quantity:    cartItem.Quantity,
		})
	}

	order := &model.Order{
		UserID:         userID,
		AddressID:      &address.ID,
		ShippingCharge: charge,
		TotalPrice:     subtotal.Add(charge),
		Status:         model.OrderStatusPending,
		Items:          orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after order placement", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order placement", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"order_id":    order.ID,
		"user_id":     userID,
		"item_count":  len(orderItems),
		"total_price": order.TotalPrice.String(),
	})
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.decorateItemImages(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// decorateItemImages fills each order item's ProductImage with the
// product's current main image URL. Items whose product has since been
// deleted keep an empty URL; the snapshot fields still render.
func (s *orderService) decorateItemImages(orders []model.Order) error {
	productIDs := make([]uint, 0)
	seen := make(map[uint]bool)
	for i := range orders {
		for j := range orders[i].Items {
			id := orders[i].Items[j].ProductID
			if !seen[id] {
				seen[id] = true
				productIDs = append(productIDs, id)
			}
		}
	}

	urls, err := s.productRepo.FindMainImageURLs(productIDs)
	if err != nil {
		return err
	}

	for i := range orders {
		for j := range orders[i].Items {
			orders[i].Items[j].ProductImage = urls[orders[i].Items[j].ProductID]
		}
	}
	return nil
}

func (s *orderService) GetOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByIDAndUserID(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// CancelOrder lets the owner cancel while the order is still pending.
// The guarded transition decides the race against an admin shipping the
// order at the same moment; only the winner's effect sticks.
func (s *orderService) CancelOrder(userID, orderID uint) error {
	logger.Info("Canceling order", map[string]interface{}{
		"order_id": orderID,
		"user_id":  userID,
	})

	order, err := s.GetOrder(userID, orderID)
	if err != nil {
		return err
	}

	if order.Status != model.OrderStatusPending {
		logger.Warn("Cancel rejected: order not pending", map[string]interface{}{
			"order_id": orderID,
			"status":   order.Status,
		})
		return ErrInvalidOrderTransition
	}

	moved, err := s.cancelAndRestock(orderID, model.OrderStatusPending, order)
	if err != nil {
		return err
	}
	if !moved {
		logger.Warn("Cancel lost the status race", map[string]interface{}{
			"order_id": orderID,
		})
		return ErrInvalidOrderTransition
	}

	logger.Info("Order canceled", map[string]interface{}{
		"order_id": orderID,
		"user_id":  userID,
	})
	return nil
}

// cancelAndRestock moves the order into canceled and returns its
// quantities to the shelf in one transaction, so a canceled order can
// never lose its stock return. Products deleted since the purchase
// match no rows and are skipped.
func (s *orderService) cancelAndRestock(orderID uint, from model.OrderStatus, order *model.Order) (bool, error) {
	var moved bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		moved, txErr = s.orderRepo.WithTx(tx).TransitionStatus(orderID, from, model.OrderStatusCanceled)
		if txErr != nil || !moved {
			return txErr
		}

		for _, item := range order.Items {
			if err := s.productRepo.WithTx(tx).IncrementStock(item.ProductID, item.Quantity); err != nil {
				logger.Error("Failed to restock canceled order item", err, map[string]interface{}{
					"order_id":   order.ID,
					"product_id": item.ProductID,
					"quantity":   item.Quantity,
				})
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return moved, nil
}

func (s *orderService) ListOrders(status *model.OrderStatus) ([]model.Order, error) {
	logger.Debug("Listing orders", map[string]interface{}{
		"status": status,
	})
	return s.orderRepo.FindWithFilter(repository.OrderFilter{Status: status})
}

// BulkTransition applies one status move to many orders. Orders that
// have already left the source status are skipped rather than failing
// the whole batch. A move into canceled restocks the order's items.
func (s *orderService) BulkTransition(orderIDs []uint, from, to model.OrderStatus) (*BulkTransitionResult, error) {
	logger.Info("Bulk order status transition", map[string]interface{}{
		"order_ids": orderIDs,
		"from":      from,
		"to":        to,
	})

	if !isAllowedTransition(from, to) {
		logger.Warn("Bulk transition rejected: move not allowed", map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, ErrInvalidOrderTransition
	}

	result := &BulkTransitionResult{
		Updated: []uint{},
		Skipped: []uint{},
	}

	for _, orderID := range orderIDs {
		order, err := s.orderRepo.FindByID(orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Skipped = append(result.Skipped, orderID)
				continue
			}
			return nil, err
		}

		var moved bool
		if to == model.OrderStatusCanceled {
			moved, err = s.cancelAndRestock(orderID, from, order)
		} else {
			moved, err = s.orderRepo.TransitionStatus(orderID, from, to)
		}
		if err != nil {
			return nil, err
		}
		if !moved {
			result.Skipped = append(result.Skipped, orderID)
			continue
		}
		result.Updated = append(result.Updated, orderID)
	}

	logger.Info("Bulk order status transition finished", map[string]interface{}{
		"updated": len(result.Updated),
		"skipped": len(result.Skipped),
		"from":    from,
		"to":      to,
	})
	return result, nil
}

// isAllowedTransition encodes the order lifecycle: pending -> shipped,
// shipped -> delivered, and canceled from any non-terminal state.
func isAllowedTransition(from, to model.OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case model.OrderStatusShipped:
		return from == model.OrderStatusPending
	case model.OrderStatusDelivered:
		return from == model.OrderStatusShipped
	case model.OrderStatusCanceled:
		return from == model.OrderStatusPending || from == model.OrderStatusShipped
	default:
		return false
	}
}
