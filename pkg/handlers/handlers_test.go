package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tradehub/escrow-settlement/pkg/middleware"
	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/payments"
	payments_mocks "github.com/tradehub/escrow-settlement/pkg/payments/mocks"
	"github.com/tradehub/escrow-settlement/pkg/storage"
	storage_mocks "github.com/tradehub/escrow-settlement/pkg/storage/mocks"
)

func newTestRouter(store *storage_mocks.Storage, gateway *payments_mocks.Gateway) http.Handler {
	return NewRouter(Deps{
		Store:   store,
		Gateway: gateway,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestRouterAuth(t *testing.T) {
	t.Run("Rejects Anonymous API Requests", func(t *testing.T) {
		router := newTestRouter(new(storage_mocks.Storage), new(payments_mocks.Gateway))

		req := httptest.NewRequest(http.MethodGet, "/transactions/tx1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Rejects Malformed Resource IDs", func(t *testing.T) {
		router := newTestRouter(new(storage_mocks.Storage), new(payments_mocks.Gateway))

		req := httptest.NewRequest(http.MethodGet, "/transactions/not-a-uuid", nil)
		req.Header.Set(middleware.ActorHeader, "user1")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Binds Well-Formed Resource IDs", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		txID := "7f8b2c1e-4a6d-4f0e-9b3a-2d5c8e1f6a09"
		mockStorage.On("GetTransaction", mock.Anything, txID).Return(nil, storage.ErrNotFound)
		router := newTestRouter(mockStorage, new(payments_mocks.Gateway))

		req := httptest.NewRequest(http.MethodGet, "/transactions/"+txID, nil)
		req.Header.Set(middleware.ActorHeader, "user1")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Webhook Needs No Actor", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockGateway := new(payments_mocks.Gateway)
		mockGateway.On("GetPayment", mock.Anything, "pay-1").
			Return(&payments.Payment{ID: "pay-1", Status: payments.StatusApproved}, nil)
		mockStorage.On("ConfirmPayment", mock.Anything, "pay-1").Return(nil)
		router := newTestRouter(mockStorage, mockGateway)

		body := `{"type":"payment","data":{"id":"pay-1"}}`
		req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
	})
}

func TestAdminGate(t *testing.T) {
	t.Run("Non-Admin Cannot List Wallets", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "user1").Return(&models.Wallet{UserId: "user1"}, nil)
		router := newTestRouter(mockStorage, new(payments_mocks.Gateway))

		req := httptest.NewRequest(http.MethodGet, "/wallets", nil)
		req.Header.Set(middleware.ActorHeader, "user1")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertNotCalled(t, "ListWallets", mock.Anything)
	})

	t.Run("Admin Can List Wallets", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "admin1").Return(&models.Wallet{UserId: "admin1", IsAdmin: true}, nil)
		mockStorage.On("ListWallets", mock.Anything).Return([]models.Wallet{}, nil)
		router := newTestRouter(mockStorage, new(payments_mocks.Gateway))

		req := httptest.NewRequest(http.MethodGet, "/wallets", nil)
		req.Header.Set(middleware.ActorHeader, "admin1")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Ledger Is Admin Only", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "user1").Return(&models.Wallet{UserId: "user1"}, nil)
		router := newTestRouter(mockStorage, new(payments_mocks.Gateway))

		req := httptest.NewRequest(http.MethodGet, "/ledger", nil)
		req.Header.Set(middleware.ActorHeader, "user1")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
