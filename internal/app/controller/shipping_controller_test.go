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
)

func setupShippingControllerTest(t *testing.T) (*ShippingController, *gin.Engine) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	testDB.Create(&model.Shipping{Charge: decimal.NewFromFloat(70.00)})

	shippingRepo := repository.NewShippingRepository(testDB)
	shippingService := service.NewShippingService(shippingRepo)

	gin.SetMode(gin.TestMode)
	return NewShippingController(shippingService), gin.New()
}

func TestShippingController_GetCharge(t *testing.T) {
	controller, router := setupShippingControllerTest(t)

	router.GET("/shipping", controller.GetCharge)

	req := httptest.NewRequest(http.MethodGet, "/shipping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "$70.00", response["charge"])
}

func TestShippingController_UpdateCharge(t *testing.T) {
	controller, router := setupShippingControllerTest(t)

	router.PUT("/admin/shipping", controller.UpdateCharge)
	router.GET("/shipping", controller.GetCharge)

	body, _ := json.Marshal(gin.H{"charge": "85.50"})
	req := httptest.NewRequest(http.MethodPut, "/admin/shipping", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/shipping", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "$85.50", response["charge"])
}

func TestShippingController_UpdateCharge_Negative(t *testing.T) {
	controller, router := setupShippingControllerTest(t)

	router.PUT("/admin/shipping", controller.UpdateCharge)

	body, _ := json.Marshal(gin.H{"charge": "-5.00"})
	req := httptest.NewRequest(http.MethodPut, "/admin/shipping", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
