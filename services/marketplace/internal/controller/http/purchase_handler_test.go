package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurchaseVideo_Anonymous(t *testing.T) {
	mockUseCase := new(MockPurchaseUseCase)
	handler := NewPurchaseHandler(mockUseCase, "/login?next=/videos/5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b01", logger.New())

	router := setupTestRouter()
	router.POST("/videos/:id/purchase", handler.PurchaseVideo)

	mockUseCase.On("PurchaseVideo", mock.Anything, "", "5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b01", (*int)(nil)).Return(nil, entity.ErrUnauthenticated)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b01/purchase", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "/login?next=/videos/5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b01", response.LoginURL)
}

func TestPurchaseVideo_CustomAmount(t *testing.T) {
	mockUseCase := new(MockPurchaseUseCase)
	handler := NewPurchaseHandler(mockUseCase, "/login", logger.New())

	router := setupTestRouter()
	router.POST("/videos/:id/purchase", withUser("user-1", handler.PurchaseVideo))

	purchase := &entity.Purchase{ID: "purchase-1", Kind: entity.KindVideo, ContentID: "5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b01", UserID: "user-1", Amount: 500, Status: entity.PurchaseStatusActive}
	mockUseCase.On("PurchaseVideo", mock.Anything, "user-1", "5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b01", mock.MatchedBy(func(amount *int) bool {
		return amount != nil && *amount == 500
	})).Return(purchase, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b01/purchase", bytes.NewBufferString(`{"amount":500}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response entity.Purchase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 500, response.Amount)
	mockUseCase.AssertExpectations(t)
}

func TestPurchaseVideo_NegativeAmount(t *testing.T) {
	mockUseCase := new(MockPurchaseUseCase)
	handler := NewPurchaseHandler(mockUseCase, "/login", logger.New())

	router := setupTestRouter()
	router.POST("/videos/:id/purchase", withUser("user-1", handler.PurchaseVideo))

	mockUseCase.On("PurchaseVideo", mock.Anything, "user-1", "5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b01", mock.Anything).Return(nil, entity.ErrInvalidAmount)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b01/purchase", bytes.NewBufferString(`{"amount":-1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseVideo_MalformedBody(t *testing.T) {
	mockUseCase := new(MockPurchaseUseCase)
	handler := NewPurchaseHandler(mockUseCase, "/login", logger.New())

	router := setupTestRouter()
	router.POST("/videos/:id/purchase", withUser("user-1", handler.PurchaseVideo))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b01/purchase", bytes.NewBufferString(`{"amount":"lots"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "PurchaseVideo", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseCourse_NotFound(t *testing.T) {
	mockUseCase := new(MockPurchaseUseCase)
	handler := NewPurchaseHandler(mockUseCase, "/login", logger.New())

	router := setupTestRouter()
	router.POST("/courses/:id/purchase", withUser("user-1", handler.PurchaseCourse))

	mockUseCase.On("PurchaseCourse", mock.Anything, "user-1", "5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0bff").Return(nil, entity.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/courses/5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0bff/purchase", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPurchasePrompt_Success(t *testing.T) {
	mockUseCase := new(MockPurchaseUseCase)
	handler := NewPurchaseHandler(mockUseCase, "/login", logger.New())

	router := setupTestRouter()
	router.POST("/prompts/:id/purchase", withUser("user-1", handler.PurchasePrompt))

	purchase := &entity.Purchase{ID: "purchase-2", Kind: entity.KindPrompt, ContentID: "5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b02", UserID: "user-1", Amount: 0, Status: entity.PurchaseStatusActive}
	mockUseCase.On("PurchasePrompt", mock.Anything, "user-1", "5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b02").Return(purchase, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/prompts/5b0f6d2c-8e1a-4c3b-9f47-2d6e8a1c0b02/purchase", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}
