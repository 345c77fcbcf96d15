package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/asifdev/trendcart-backend/internal/app/service"
	apperrors "github.com/asifdev/trendcart-backend/internal/errors"
	"github.com/asifdev/trendcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	District    string `json:"district"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code" binding:"required"`
}

func (req *AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		District:    req.District,
		State:       req.State,
		ZipCode:     req.ZipCode,
	}
}

// ListAddresses returns the current user's addresses
// GET /api/v1/addresses
func (ctrl *AddressController) ListAddresses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	addresses, err := ctrl.addressService.ListAddresses(userID)
	if err != nil {
		log.Error("Failed to list addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// CreateAddress adds a new address for the current user
// POST /api/v1/addresses
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create address request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid address data")
		return
	}

	address, err := ctrl.addressService.CreateAddress(userID, req.toInput())
	if err != nil {
		log.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create address")
		return
	}

	log.Info("Address created successfully", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"address": address,
	})
}

// UpdateAddress updates one of the current user's addresses
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid address ID")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update address request", map[string]interface{}{
			"user_id":    userID,
			"address_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid address data")
		return
	}

	address, err := ctrl.addressService.UpdateAddress(userID, uint(id), req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			log.Warn("Address not found for update", map[string]interface{}{
				"user_id":    userID,
				"address_id": id,
			})
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
			return
		}
		log.Error("Failed to update address", err, map[string]interface{}{
			"address_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"address": address,
	})
}

// DeleteAddress removes one of the current user's addresses
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Please log in to continue")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid address ID")
		return
	}

	if err := ctrl.addressService.DeleteAddress(userID, uint(id)); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			log.Warn("Address not found for deletion", map[string]interface{}{
				"user_id":    userID,
				"address_id": id,
			})
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
			return
		}
		log.Error("Failed to delete address", err, map[string]interface{}{
			"address_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete address")
		return
	}

	log.Info("Address deleted successfully", map[string]interface{}{
		"address_id": id,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
	})
}
