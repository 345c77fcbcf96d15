package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/internal/app/service"
	"github.com/asifdev/trendcart-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderControllerFixture struct {
	controller *OrderController
	admin      *AdminOrderController
	router     *gin.Engine
	db         *gorm.DB
	user       *model.User
	address    *model.Address
	product    *model.Product
}

func setupOrderControllerTest(t *testing.T) *orderControllerFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	shippingRepo := repository.NewShippingRepository(testDB)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, addressRepo, shippingRepo, testDB)

	user := &model.User{
		Email:        "buyer@example.com",
		Username:     "buyer",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	address := &model.Address{
		UserID:      user.ID,
		FirstName:   "Pat",
		PhoneNumber: "555-0100",
		Address:     "1 Main St",
	}
	testDB.Create(address)

	category := &model.Category{Name: "Electronics"}
	testDB.Create(category)

	product := &model.Product{
		Name:              "Test Product",
		CategoryID:        category.ID,
		Price:             decimal.NewFromFloat(25.00),
		QuantityAvailable: 10,
	}
	testDB.Create(product)

	testDB.Create(&model.Shipping{Charge: decimal.NewFromFloat(70.00)})

	gin.SetMode(gin.TestMode)

	return &orderControllerFixture{
		controller: NewOrderController(orderService),
		admin:      NewAdminOrderController(orderService),
		router:     gin.New(),
		db:         testDB,
		user:       user,
		address:    address,
		product:    product,
	}
}

func (f *orderControllerFixture) addCartItem(t *testing.T, quantity int) {
	t.Helper()
	require.NoError(t, f.db.Create(&model.CartItem{
		UserID:    f.user.ID,
		ProductID: f.product.ID,
		Quantity:  quantity,
	}).Error)
}

func TestOrderController_Checkout(t *testing.T) {
	f := setupOrderControllerTest(t)
	f.addCartItem(t, 2)

	f.router.GET("/checkout", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.Checkout(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Len(t, response["items"], 1)
	assert.Len(t, response["addresses"], 1)

	summary := response["cart_summary"].(map[string]interface{})
	assert.Equal(t, "$50.00", summary["subtotal"])
	assert.Equal(t, "$70.00", summary["shipping_charge"])
	assert.Equal(t, "$120.00", summary["total"])
}

func TestOrderController_Checkout_EmptyCart(t *testing.T) {
	f := setupOrderControllerTest(t)

	f.router.GET("/checkout", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.Checkout(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_PlaceOrder(t *testing.T) {
	f := setupOrderControllerTest(t)
	f.addCartItem(t, 2)

	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{AddressID: f.address.ID})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	order := response["order"].(map[string]interface{})
	assert.Equal(t, "pending", order["status"])
	// 2 x 25.00 + 70.00 shipping
	assert.Equal(t, "$120.00", order["total_price"])
	assert.Equal(t, "$70.00", order["shipping_charge"])
}

func TestOrderController_PlaceOrder_EmptyCart(t *testing.T) {
	f := setupOrderControllerTest(t)

	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{AddressID: f.address.ID})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_PlaceOrder_InsufficientStock(t *testing.T) {
	f := setupOrderControllerTest(t)
	f.addCartItem(t, 5)
	f.db.Model(f.product).Update("quantity_available", 1)

	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{AddressID: f.address.ID})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderController_PlaceOrder_MissingAddress(t *testing.T) {
	f := setupOrderControllerTest(t)
	f.addCartItem(t, 1)

	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.PlaceOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func placeOrder(t *testing.T, f *orderControllerFixture, quantity int) uint {
	t.Helper()
	f.addCartItem(t, quantity)

	group := gin.New()
	group.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{AddressID: f.address.ID})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	group.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return uint(response["order"].(map[string]interface{})["id"].(float64))
}

func TestOrderController_GetOrders(t *testing.T) {
	f := setupOrderControllerTest(t)
	placeOrder(t, f, 1)
	placeOrder(t, f, 2)

	f.router.GET("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.GetOrders(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["count"])
}

func TestOrderController_CancelOrder(t *testing.T) {
	f := setupOrderControllerTest(t)
	orderID := placeOrder(t, f, 3)

	f.router.POST("/orders/:id/cancel", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.CancelOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders/1/cancel", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var order model.Order
	f.db.First(&order, orderID)
	assert.Equal(t, model.OrderStatusCanceled, order.Status)

	// Canceled stock goes back on the shelf
	var product model.Product
	f.db.First(&product, f.product.ID)
	assert.Equal(t, 10, product.QuantityAvailable)
}

func TestOrderController_CancelOrder_NotPending(t *testing.T) {
	f := setupOrderControllerTest(t)
	orderID := placeOrder(t, f, 1)

	f.db.Model(&model.Order{}).Where("id = ?", orderID).
		Update("status", model.OrderStatusShipped)

	f.router.POST("/orders/:id/cancel", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.CancelOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders/1/cancel", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminOrderController_ListOrders_StatusFilter(t *testing.T) {
	f := setupOrderControllerTest(t)
	first := placeOrder(t, f, 1)
	placeOrder(t, f, 1)

	f.db.Model(&model.Order{}).Where("id = ?", first).
		Update("status", model.OrderStatusShipped)

	f.router.GET("/admin/orders", f.admin.ListOrders)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders?status=pending", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestAdminOrderController_ListOrders_UnknownStatus(t *testing.T) {
	f := setupOrderControllerTest(t)

	f.router.GET("/admin/orders", f.admin.ListOrders)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders?status=paused", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminOrderController_BulkAction_Ship(t *testing.T) {
	f := setupOrderControllerTest(t)
	first := placeOrder(t, f, 1)
	second := placeOrder(t, f, 1)

	// second is already shipped, so the bulk ship skips it
	f.db.Model(&model.Order{}).Where("id = ?", second).
		Update("status", model.OrderStatusShipped)

	f.router.POST("/admin/orders/bulk", f.admin.BulkAction)

	body, _ := json.Marshal(BulkOrderActionRequest{
		OrderIDs: []uint{first, second},
		Action:   "ship",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/orders/bulk", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response["updated"], 1)
	assert.Len(t, response["skipped"], 1)
}

func TestAdminOrderController_BulkAction_CancelShipped(t *testing.T) {
	f := setupOrderControllerTest(t)
	first := placeOrder(t, f, 2)
	second := placeOrder(t, f, 1)

	// Only first has shipped; second is still pending and is skipped.
	f.db.Model(&model.Order{}).Where("id = ?", first).
		Update("status", model.OrderStatusShipped)

	f.router.POST("/admin/orders/bulk", f.admin.BulkAction)

	body, _ := json.Marshal(BulkOrderActionRequest{
		OrderIDs: []uint{first, second},
		Action:   "cancel_shipped",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/orders/bulk", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response["updated"], 1)
	assert.Len(t, response["skipped"], 1)

	var canceled model.Order
	require.NoError(t, f.db.First(&canceled, first).Error)
	assert.Equal(t, model.OrderStatusCanceled, canceled.Status)

	// The shipped order's quantity came back to the shelf.
	var product model.Product
	require.NoError(t, f.db.First(&product, f.product.ID).Error)
	assert.Equal(t, 9, product.QuantityAvailable)
}

func TestAdminOrderController_BulkAction_UnknownAction(t *testing.T) {
	f := setupOrderControllerTest(t)

	f.router.POST("/admin/orders/bulk", f.admin.BulkAction)

	body, _ := json.Marshal(BulkOrderActionRequest{
		OrderIDs: []uint{1},
		Action:   "teleport",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/orders/bulk", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminOrderController_ExportOrders(t *testing.T) {
	f := setupOrderControllerTest(t)
	placeOrder(t, f, 2)

	f.router.GET("/admin/orders/export", f.admin.ExportOrders)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders/export", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders-")
	assert.NotZero(t, w.Body.Len())
}
