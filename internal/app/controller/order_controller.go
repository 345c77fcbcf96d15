package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/service"
	apperrors "github.com/asifdev/trendcart-backend/internal/errors"
	"github.com/asifdev/trendcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type PlaceOrderRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
}

func orderPayload(order *model.Order) gin.H {
	return gin.H{
		"id":              order.ID,
		"status":          order.Status,
		"status_since":    order.StatusTimestamp(),
		"shipping_charge": usd(order.ShippingCharge),
		"total_price":     usd(order.TotalPrice),
		"created_at":      order.CreatedAt,
		"address":         order.Address,
		"items":           order.Items,
		"history":         order.History,
	}
}

// Checkout returns the cart contents, totals, and the user's saved
// addresses so the checkout page renders from one call
// GET /api/v1/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	data, err := ctrl.orderService.Checkout(userID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			log.Warn("Checkout with empty cart", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
			return
		}
		log.Error("Failed to prepare checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "prepare checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     data.Items,
		"addresses": data.Addresses,
		"cart_summary": gin.H{
			"subtotal":        usd(data.Summary.Subtotal),
			"shipping_charge": usd(data.Summary.ShippingCharge),
			"total":           usd(data.Summary.Total),
		},
	})
}

// PlaceOrder turns the cart into a pending order
// POST /api/v1/orders
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to place order", nil)
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid place order request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.OrderAddressRequired, "A delivery address is required")
		return
	}

	log.Debug("Placing order", map[string]interface{}{
		"user_id":    userID,
		"address_id": req.AddressID,
	})

	order, err := ctrl.orderService.PlaceOrder(userID, req.AddressID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddressNotFound):
			log.Warn("Address not found for order", map[string]interface{}{
				"user_id":    userID,
				"address_id": req.AddressID,
			})
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
		case errors.Is(err, service.ErrEmptyCart):
			log.Warn("Cannot place order with empty cart", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
		case errors.Is(err, service.ErrInsufficientStock):
			log.Warn("Order failed: insufficient stock", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.Conflict(c, apperrors.OrderInsufficientStock, "Some items in your cart are no longer in stock")
		default:
			log.Error("Failed to place order", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "place order")
		}
		return
	}

	log.Info("Order placed successfully", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   orderPayload(order),
	})
}

// GetOrders returns the current user's order history, newest first
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch orders")
		return
	}

	payloads := make([]gin.H, 0, len(orders))
	for i := range orders {
		payloads = append(payloads, orderPayload(&orders[i]))
	}

	log.Info("Orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})

	c.JSON(http.StatusOK, gin.H{
		"orders": payloads,
		"count":  len(orders),
	})
}

// GetOrder returns one of the current user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrder(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			log.Warn("Order not found", map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": orderPayload(order),
	})
}

// CancelOrder cancels a pending order and restores its stock
// POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	if err := ctrl.orderService.CancelOrder(userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			log.Warn("Order not found for cancellation", map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderTransition):
			log.Warn("Order cannot be canceled", map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			apperrors.Conflict(c, apperrors.OrderInvalidTransition, "Only pending orders can be canceled")
		default:
			log.Error("Failed to cancel order", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "cancel order")
		}
		return
	}

	log.Info("Order canceled successfully", map[string]interface{}{
		"order_id": id,
		"user_id":  userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order canceled successfully",
	})
}
