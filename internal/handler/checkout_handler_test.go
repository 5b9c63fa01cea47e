package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pixel-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, userID int64) (*model.CheckoutResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResult), args.Error(1)
}

func (m *MockCheckoutService) History(ctx context.Context, userID int64) ([]model.Purchase, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Purchase), args.Error(1)
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	logger := zerolog.Nop()

	result := &model.CheckoutResult{
		Purchases: []model.Purchase{
			{
				ID:          uuid.New(),
				UserID:      7,
				Product:     model.GameRef(1),
				Quantity:    2,
				TotalPrice:  decimal.RequireFromString("39.98"),
				PurchasedAt: time.Now(),
			},
		},
		Total: decimal.RequireFromString("39.98"),
	}

	mockService := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockService, logger)

	mockService.On("Checkout", mock.Anything, int64(7)).Return(result, nil)

	req := authedRequest(http.MethodPost, "/api/checkout", nil, 7, false)
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got model.CheckoutResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Len(t, got.Purchases, 1)
	mockService.AssertExpectations(t)
}

func TestCheckoutHandler_Checkout_Unauthenticated(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "Checkout")
}

func TestCheckoutHandler_Checkout_MethodNotAllowed(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockService, logger)

	req := authedRequest(http.MethodGet, "/api/checkout", nil, 7, false)
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCheckoutHandler_History(t *testing.T) {
	logger := zerolog.Nop()

	purchases := []model.Purchase{
		{
			ID:          uuid.New(),
			UserID:      7,
			Product:     model.HardwareRef(3),
			Quantity:    1,
			TotalPrice:  decimal.RequireFromString("59.00"),
			PurchasedAt: time.Now(),
		},
	}

	mockService := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockService, logger)

	mockService.On("History", mock.Anything, int64(7)).Return(purchases, nil)

	req := authedRequest(http.MethodGet, "/api/purchases", nil, 7, false)
	w := httptest.NewRecorder()

	handler.History(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []model.Purchase
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, model.HardwareRef(3), got[0].Product)
	mockService.AssertExpectations(t)
}
