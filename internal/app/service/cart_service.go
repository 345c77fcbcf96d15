package service

import (
	"errors"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrStockExceeded    = errors.New("requested quantity exceeds available stock")
)

// QuantityAction selects how UpdateCartItem changes the line quantity.
type QuantityAction string

const (
	QuantityIncrease QuantityAction = "increase"
	QuantityDecrease QuantityAction = "decrease"
	QuantitySet      QuantityAction = "set"
)

type CartSummary struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	Total          decimal.Decimal `json:"total"`
}

type CartView struct {
	Items   []model.CartItem `json:"items"`
	Summary CartSummary      `json:"summary"`
}

type CartUpdateResult struct {
	Item    *model.CartItem
	Summary CartSummary
}

type CartService interface {
	GetCart(userID uint) (*CartView, error)
	AddToCart(userID, productID uint, quantity int) error
	UpdateCartItem(userID, cartItemID uint, action QuantityAction, quantity int) (*CartUpdateResult, error)
	RemoveFromCart(userID, cartItemID uint) error
	ClearCart(userID uint) error
	CountItems(userID uint) (int64, error)
	Summarize(userID uint) (CartSummary, error)
	GetCartProductIDs(userID uint) ([]uint, error)
}

type cartService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	shippingRepo repository.ShippingRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	shippingRepo repository.ShippingRepository,
) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		shippingRepo: shippingRepo,
	}
}

// summarize totals the given lines. Shipping only applies to a
// non-empty cart, so an empty cart never shows a dangling charge.
func (s *cartService) summarize(items []model.CartItem) (CartSummary, error) {
	summary := CartSummary{
		Subtotal:       decimal.Zero,
		ShippingCharge: decimal.Zero,
		Total:          decimal.Zero,
	}

	if len(items) == 0 {
		return summary, nil
	}

	for i := range items {
		summary.Subtotal = summary.Subtotal.Add(items[i].TotalPrice())
	}

	charge, err := s.shippingCharge()
	if err != nil {
		return summary, err
	}

	summary.ShippingCharge = charge
	summary.Total = summary.Subtotal.Add(charge)
	return summary, nil
}

// shippingCharge reads the singleton charge. Until an admin configures
// one, shipping is free.
func (s *cartService) shippingCharge() (decimal.Decimal, error) {
	shipping, err := s.shippingRepo.Get()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return shipping.Charge, nil
}

func (s *cartService) GetCart(userID uint) (*CartView, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	summary, err := s.summarize(items)
	if err != nil {
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return &CartView{Items: items, Summary: summary}, nil
}

// GetCartProductIDs returns the product ids currently in the user's
// cart, used to mark products the storefront already shows as added.
func (s *cartService) GetCartProductIDs(userID uint) ([]uint, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ProductID)
	}
	return ids, nil
}

func (s *cartService) Summarize(userID uint) (CartSummary, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return CartSummary{}, err
	}
	return s.summarize(items)
}

// AddToCart merges the quantity into an existing line or starts a new
// one. Merging into an existing line fails outright when the combined
// quantity would exceed stock; a brand new line instead clamps down to
// whatever stock remains.
func (s *cartService) AddToCart(userID, productID uint, quantity int) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	if product.QuantityAvailable <= 0 {
		logger.Warn("Cannot add to cart: product out of stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return ErrOutOfStock
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	if existing != nil {
		combined := existing.Quantity + quantity
		if combined > product.QuantityAvailable {
			logger.Warn("Cannot add to cart: combined quantity exceeds stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
				"requested":  combined,
				"available":  product.QuantityAvailable,
			})
			return ErrStockExceeded
		}

		existing.Quantity = combined
		if err := s.cartRepo.Update(existing); err != nil {
			logger.Error("Failed to update cart item", err, map[string]interface{}{
				"cart_item_id": existing.ID,
			})
			return err
		}

		logger.Info("Cart item quantity merged", map[string]interface{}{
			"cart_item_id": existing.ID,
			"quantity":     combined,
		})
		return nil
	}

	if quantity > product.QuantityAvailable {
		quantity = product.QuantityAvailable
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     quantity,
	})
	return nil
}

// UpdateCartItem adjusts a line quantity. Increase stops silently at
// available stock, decrease floors at one, and an absolute set clamps
// into [1, available]. The refreshed cart summary is returned alongside
// the line so the caller can repaint totals in one round trip.
func (s *cartService) UpdateCartItem(userID, cartItemID uint, action QuantityAction, quantity int) (*CartUpdateResult, error) {
	logger.Info("Updating cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"action":       action,
		"quantity":     quantity,
	})

	item, err := s.cartRepo.FindByIDAndUserID(cartItemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found", map[string]interface{}{
				"cart_item_id": cartItemID,
				"user_id":      userID,
			})
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, err
	}

	available := item.Product.QuantityAvailable

	newQuantity := item.Quantity
	switch action {
	case QuantityIncrease:
		if item.Quantity < available {
			newQuantity = item.Quantity + 1
		}
	case QuantityDecrease:
		if item.Quantity > 1 {
			newQuantity = item.Quantity - 1
		}
	case QuantitySet:
		newQuantity = quantity
		if newQuantity < 1 {
			newQuantity = 1
		}
		if newQuantity > available {
			newQuantity = available
		}
	default:
		return nil, ErrCartItemNotFound
	}

	if newQuantity != item.Quantity {
		item.Quantity = newQuantity
		if err := s.cartRepo.Update(item); err != nil {
			logger.Error("Failed to update cart item", err, map[string]interface{}{
				"cart_item_id": cartItemID,
			})
			return nil, err
		}
	}

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarize(items)
	if err != nil {
		return nil, err
	}

	logger.Info("Cart item updated successfully", map[string]interface{}{
		"cart_item_id": cartItemID,
		"quantity":     item.Quantity,
	})
	return &CartUpdateResult{Item: item, Summary: summary}, nil
}

func (s *cartService) RemoveFromCart(userID, cartItemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	rows, err := s.cartRepo.Delete(cartItemID, userID)
	if err != nil {
		logger.Error("Failed to delete cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}
	if rows == 0 {
		logger.Warn("Cart item not found for removal", map[string]interface{}{
			"cart_item_id": cartItemID,
			"user_id":      userID,
		})
		return ErrCartItemNotFound
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"cart_item_id": cartItemID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})
	return s.cartRepo.DeleteByUserID(userID)
}

func (s *cartService) CountItems(userID uint) (int64, error) {
	return s.cartRepo.CountByUserID(userID)
}
