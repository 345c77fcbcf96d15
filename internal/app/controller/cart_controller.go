package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/asifdev/trendcart-backend/internal/app/service"
	apperrors "github.com/asifdev/trendcart-backend/internal/errors"
	"github.com/asifdev/trendcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// UpdateCartRequest carries either a relative change ("increase" or
// "decrease") or an absolute quantity; quantity_change wins when both
// are present.
type UpdateCartRequest struct {
	QuantityChange string `json:"quantity_change"`
	Quantity       int    `json:"quantity"`
}

// usd renders a money value with a dollar sign and two decimals
func usd(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func cartSummaryPayload(summary service.CartSummary) gin.H {
	return gin.H{
		"subtotal":        usd(summary.Subtotal),
		"shipping_charge": usd(summary.ShippingCharge),
		"total":           usd(summary.Total),
	}
}

// GetCart returns the user's cart with totals
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to cart", nil)
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	view, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch cart")
		return
	}

	log.Info("Cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(view.Items),
	})

	c.JSON(http.StatusOK, gin.H{
		"cart_items":   view.Items,
		"count":        len(view.Items),
		"cart_summary": cartSummaryPayload(view.Summary),
	})
}

// AddToCart adds a product to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add to cart", nil)
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart data")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	log.Debug("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	err := ctrl.cartService.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			log.Warn("Product not found for cart", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
		case errors.Is(err, service.ErrOutOfStock):
			log.Warn("Product out of stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.BadRequest(c, apperrors.CartOutOfStock, "Product is out of stock")
		case errors.Is(err, service.ErrStockExceeded):
			log.Warn("Requested quantity exceeds stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
				"quantity":   req.Quantity,
			})
			apperrors.BadRequest(c, apperrors.CartStockExceeded, "Not enough stock for the requested quantity")
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add to cart")
		}
		return
	}

	log.Info("Item added to cart successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to cart successfully",
	})
}

// UpdateCartItem adjusts a cart line quantity and returns the refreshed
// line total and cart summary so the client can repaint totals without
// a second request
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to update cart item", nil)
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
			"error":        err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart data")
		return
	}

	action := service.QuantitySet
	switch req.QuantityChange {
	case "increase":
		action = service.QuantityIncrease
	case "decrease":
		action = service.QuantityDecrease
	case "":
		if req.Quantity < 1 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Quantity must be at least 1")
			return
		}
	default:
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown quantity change")
		return
	}

	result, err := ctrl.cartService.UpdateCartItem(userID, uint(id), action, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			log.Warn("Cart item not found", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": id,
			})
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to update cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update cart item")
		return
	}

	log.Info("Cart item updated successfully", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": id,
		"quantity":     result.Item.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"quantity":         result.Item.Quantity,
		"item_total_price": result.Item.TotalPrice().StringFixed(2),
		"cart_summary":     cartSummaryPayload(result.Summary),
	})
}

// RemoveFromCart removes one line from the cart
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to remove cart item", nil)
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	if err := ctrl.cartService.RemoveFromCart(userID, uint(id)); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			log.Warn("Cart item not found for removal", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": id,
			})
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"cart_item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove cart item")
		return
	}

	summary, err := ctrl.cartService.Summarize(userID)
	if err != nil {
		log.Error("Failed to summarize cart after removal", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch cart")
		return
	}

	log.Info("Cart item removed successfully", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":      "Cart item removed successfully",
		"cart_summary": cartSummaryPayload(summary),
	})
}

// ClearCart removes every line from the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "clear cart")
		return
	}

	log.Info("Cart cleared successfully", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// CountItems returns how many lines are in the cart, for the header badge
// GET /api/v1/cart/count
func (ctrl *CartController) CountItems(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	count, err := ctrl.cartService.CountItems(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "count cart items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": count,
	})
}
