package controller

import (
	"errors"
	"net/http"

	"github.com/asifdev/trendcart-backend/internal/app/service"
	apperrors "github.com/asifdev/trendcart-backend/internal/errors"
	"github.com/asifdev/trendcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ShippingController struct {
	shippingService service.ShippingService
}

func NewShippingController(shippingService service.ShippingService) *ShippingController {
	return &ShippingController{
		shippingService: shippingService,
	}
}

type UpdateShippingRequest struct {
	Charge decimal.Decimal `json:"charge" binding:"required"`
}

// GetCharge returns the store-wide shipping charge
// GET /api/v1/shipping
func (ctrl *ShippingController) GetCharge(c *gin.Context) {
	shipping, err := ctrl.shippingService.GetCharge()
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch shipping charge")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"charge": usd(shipping.Charge),
	})
}

// UpdateCharge edits the store-wide shipping charge
// PUT /api/v1/admin/shipping
func (ctrl *ShippingController) UpdateCharge(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid shipping charge update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid shipping charge")
		return
	}

	shipping, err := ctrl.shippingService.UpdateCharge(req.Charge)
	if err != nil {
		if errors.Is(err, service.ErrInvalidShippingCharge) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Shipping charge must not be negative")
			return
		}
		log.Error("Failed to update shipping charge", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update shipping charge")
		return
	}

	log.Info("Shipping charge updated by admin", map[string]interface{}{
		"charge": shipping.Charge.String(),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping charge updated successfully",
		"charge":  usd(shipping.Charge),
	})
}
