package wallets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tradehub/escrow-settlement/pkg/api"
	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/storage"
	storage_mocks "github.com/tradehub/escrow-settlement/pkg/storage/mocks"
)

func TestCreateWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewWalletsHandler(mockStorage)

		mockStorage.On("CreateWallet", mock.Anything, mock.MatchedBy(func(w *models.Wallet) bool {
			return w.UserId == "user1" && w.Balance == 0 && !w.IsAdmin
		})).Return(&models.Wallet{UserId: "user1", Name: "Alex"}, nil)

		body, _ := json.Marshal(api.NewWallet{UserId: "user1", Name: "Alex"})
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateWallet(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewWalletsHandler(mockStorage)

		mockStorage.On("CreateWallet", mock.Anything, mock.Anything).Return(nil, storage.ErrWalletExists)

		body, _ := json.Marshal(api.NewWallet{UserId: "user1", Name: "Alex"})
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateWallet(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Missing User ID", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewWalletsHandler(mockStorage)

		body, _ := json.Marshal(api.NewWallet{Name: "Alex"})
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateWallet(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateWallet", mock.Anything, mock.Anything)
	})
}

func TestGetWalletByUserId(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewWalletsHandler(mockStorage)

		mockStorage.On("GetWallet", mock.Anything, "user1").Return(&models.Wallet{UserId: "user1", Balance: 12750}, nil)

		req := httptest.NewRequest(http.MethodGet, "/wallets/user1", nil)
		rr := httptest.NewRecorder()

		handler.GetWalletByUserId(rr, req, "user1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp api.Wallet
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, int64(12750), resp.Balance)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewWalletsHandler(mockStorage)

		mockStorage.On("GetWallet", mock.Anything, "ghost").Return(nil, storage.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/wallets/ghost", nil)
		rr := httptest.NewRecorder()

		handler.GetWalletByUserId(rr, req, "ghost")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListWallets(t *testing.T) {
	t.Run("Sorted Newest First", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewWalletsHandler(mockStorage)

		older := models.Wallet{UserId: "user1", CreatedAt: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)}
		newer := models.Wallet{UserId: "user2", CreatedAt: time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)}
		mockStorage.On("ListWallets", mock.Anything).Return([]models.Wallet{older, newer}, nil)

		req := httptest.NewRequest(http.MethodGet, "/wallets", nil)
		rr := httptest.NewRecorder()

		handler.ListWallets(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp []*api.Wallet
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, "user2", resp[0].UserId)
	})
}
