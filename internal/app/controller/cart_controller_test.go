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

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	shippingRepo := repository.NewShippingRepository(testDB)
	cartService := service.NewCartService(cartRepo, productRepo, shippingRepo)
	cartController := NewCartController(cartService)

	user := &model.User{
		Email:        "test@example.com",
		Username:     "testuser",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

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
	router := gin.New()

	return cartController, router, testDB, user, product
}

// Helper function to set user ID in context
func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set("user_id", userID)
}

func TestCartController_GetCart(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(1), response["count"])

	summary := response["cart_summary"].(map[string]interface{})
	assert.Equal(t, "$50.00", summary["subtotal"])
	assert.Equal(t, "$70.00", summary["shipping_charge"])
	assert.Equal(t, "$120.00", summary["total"])
}

func TestCartController_GetCart_Empty(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, float64(0), response["count"])

	// No shipping charge dangles on an empty cart
	summary := response["cart_summary"].(map[string]interface{})
	assert.Equal(t, "$0.00", summary["shipping_charge"])
	assert.Equal(t, "$0.00", summary["total"])
}

func TestCartController_AddToCart(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	body, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 3})
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCartController_AddToCart_OutOfStock(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	testDB.Model(product).Update("quantity_available", 0)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	body, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_AddToCart_ProductNotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	body, _ := json.Marshal(AddToCartRequest{ProductID: 9999, Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartController_UpdateCartItem_Increase(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}
	testDB.Create(item)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	body, _ := json.Marshal(UpdateCartRequest{QuantityChange: "increase"})
	req := httptest.NewRequest(http.MethodPut, "/cart/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(3), response["quantity"])
	assert.Equal(t, "75.00", response["item_total_price"])

	summary := response["cart_summary"].(map[string]interface{})
	assert.Equal(t, "$75.00", summary["subtotal"])
	assert.Equal(t, "$145.00", summary["total"])
}

func TestCartController_UpdateCartItem_AbsoluteSet(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}
	testDB.Create(item)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	// Asking for 50 clamps to the 10 in stock
	body, _ := json.Marshal(UpdateCartRequest{Quantity: 50})
	req := httptest.NewRequest(http.MethodPut, "/cart/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(10), response["quantity"])
}

func TestCartController_UpdateCartItem_UnknownAction(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	body, _ := json.Marshal(UpdateCartRequest{QuantityChange: "double"})
	req := httptest.NewRequest(http.MethodPut, "/cart/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_UpdateCartItem_NotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	body, _ := json.Marshal(UpdateCartRequest{QuantityChange: "increase"})
	req := httptest.NewRequest(http.MethodPut, "/cart/9999", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartController_RemoveFromCart(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}
	testDB.Create(item)

	router.DELETE("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveFromCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	// Removing the last line zeroes the summary
	summary := response["cart_summary"].(map[string]interface{})
	assert.Equal(t, "$0.00", summary["total"])

	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCartController_CountItems(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})

	router.GET("/cart/count", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CountItems(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart/count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestCartController_GetCart_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupCartControllerTest(t)

	router.GET("/cart", controller.GetCart)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
