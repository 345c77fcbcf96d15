package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/service"
	apperrors "github.com/asifdev/trendcart-backend/internal/errors"
	"github.com/asifdev/trendcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type AdminOrderController struct {
	orderService service.OrderService
}

func NewAdminOrderController(orderService service.OrderService) *AdminOrderController {
	return &AdminOrderController{
		orderService: orderService,
	}
}

type BulkOrderActionRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required,min=1"`
	Action   string `json:"action" binding:"required"`
}

// bulkActionTransitions maps an admin action to its status move. Only
// orders still in the source status are touched; the rest are skipped.
var bulkActionTransitions = map[string]struct {
	From model.OrderStatus
	To   model.OrderStatus
}{
	"ship":           {From: model.OrderStatusPending, To: model.OrderStatusShipped},
	"deliver":        {From: model.OrderStatusShipped, To: model.OrderStatusDelivered},
	"cancel":         {From: model.OrderStatusPending, To: model.OrderStatusCanceled},
	"cancel_shipped": {From: model.OrderStatusShipped, To: model.OrderStatusCanceled},
}

func parseStatusQuery(c *gin.Context) (*model.OrderStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, true
	}
	status := model.OrderStatus(raw)
	switch status {
	case model.OrderStatusPending, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCanceled:
		return &status, true
	default:
		return nil, false
	}
}

// ListOrders returns all orders, optionally filtered by status
// GET /api/v1/admin/orders?status=pending
func (ctrl *AdminOrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status, ok := parseStatusQuery(c)
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown order status")
		return
	}

	orders, err := ctrl.orderService.ListOrders(status)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"status": status,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list orders")
		return
	}

	log.Info("Admin listed orders", map[string]interface{}{
		"status": status,
		"count":  len(orders),
	})

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// BulkAction moves a batch of orders along the lifecycle. Orders that
// already left the expected status are reported as skipped instead of
// failing the batch.
// POST /api/v1/admin/orders/bulk
func (ctrl *AdminOrderController) BulkAction(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkOrderActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid bulk order action request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid bulk action data")
		return
	}

	transition, ok := bulkActionTransitions[req.Action]
	if !ok {
		log.Warn("Unknown bulk order action", map[string]interface{}{
			"action": req.Action,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown bulk action")
		return
	}

	log.Info("Running bulk order action", map[string]interface{}{
		"action":    req.Action,
		"order_ids": req.OrderIDs,
	})

	result, err := ctrl.orderService.BulkTransition(req.OrderIDs, transition.From, transition.To)
	if err != nil {
		log.Error("Bulk order action failed", err, map[string]interface{}{
			"action": req.Action,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "bulk order action")
		return
	}

	log.Info("Bulk order action finished", map[string]interface{}{
		"action":  req.Action,
		"updated": len(result.Updated),
		"skipped": len(result.Skipped),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Bulk action completed",
		"updated": result.Updated,
		"skipped": result.Skipped,
	})
}

// ExportOrders streams the (optionally filtered) order list as an xlsx
// workbook for back-office reporting
// GET /api/v1/admin/orders/export?status=delivered
func (ctrl *AdminOrderController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status, ok := parseStatusQuery(c)
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown order status")
		return
	}

	orders, err := ctrl.orderService.ListOrders(status)
	if err != nil {
		log.Error("Failed to fetch orders for export", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "export orders")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order ID", "Customer Email", "Status", "Items", "Shipping Charge", "Total Price", "Placed At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, order := range orders {
		itemCount := 0
		for _, item := range order.Items {
			itemCount += item.Quantity
		}
		values := []interface{}{
			order.ID,
			order.User.Email,
			string(order.Status),
			itemCount,
			order.ShippingCharge.StringFixed(2),
			order.TotalPrice.StringFixed(2),
			order.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to write order export", err, nil)
		return
	}

	log.Info("Order export generated", map[string]interface{}{
		"count":    len(orders),
		"filename": filename,
	})
}
