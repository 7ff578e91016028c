package transactions

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tradehub/escrow-settlement/pkg/api"
	"github.com/tradehub/escrow-settlement/pkg/events"
	"github.com/tradehub/escrow-settlement/pkg/middleware"
	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/payments"
	payments_mocks "github.com/tradehub/escrow-settlement/pkg/payments/mocks"
	"github.com/tradehub/escrow-settlement/pkg/scheduler"
	scheduler_mocks "github.com/tradehub/escrow-settlement/pkg/scheduler/mocks"
	"github.com/tradehub/escrow-settlement/pkg/storage"
	storage_mocks "github.com/tradehub/escrow-settlement/pkg/storage/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(store *storage_mocks.Storage, gateway *payments_mocks.Gateway, sched *scheduler_mocks.Scheduler) *TransactionsHandler {
	return NewTransactionsHandler(store, gateway, sched, &events.NoOpPublisher{}, testLogger())
}

func activeListing() *models.Listing {
	return &models.Listing{
		Id:       uuid.New().String(),
		SellerId: "seller1",
		Title:    "Enchanted Blade",
		Price:    15000,
		IsActive: true,
	}
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// 1. Setup
		mockStorage := new(storage_mocks.Storage)
		mockGateway := new(payments_mocks.Gateway)
		handler := newTestHandler(mockStorage, mockGateway, nil)

		listing := activeListing()

		// 2. Mock expectations
		mockStorage.On("GetListing", mock.Anything, listing.Id).Return(listing, nil)
		mockGateway.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(c payments.Checkout) bool {
			return c.Amount == listing.Price && c.Title == listing.Title
		})).Return(&payments.Payment{ID: "pay-123", RedirectURL: "https://gateway.example/checkout/pay-123"}, nil)
		mockStorage.On("ReserveListing", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			// 15000 cents at the standard 15% rate.
			return tx.BuyerId == "buyer1" &&
				tx.SellerId == "seller1" &&
				tx.Amount == 15000 &&
				tx.Fee == 2250 &&
				tx.NetAmount == 12750 &&
				tx.PaymentRef == "pay-123"
		})).Return(func(ctx context.Context, tx *models.Transaction) *models.Transaction { return tx }, nil)

		// 3. Execute
		body, _ := json.Marshal(api.NewOrder{ListingId: listing.Id})
		req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "buyer1")
		rr := httptest.NewRecorder()

		handler.PlaceOrder(rr, req)

		// 4. Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp api.CheckoutResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "pay-123", resp.PaymentId)
		assert.Equal(t, int64(2250), resp.Transaction.Fee)
		mockStorage.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
	})

	t.Run("Self Purchase", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockGateway := new(payments_mocks.Gateway)
		handler := newTestHandler(mockStorage, mockGateway, nil)

		listing := activeListing()
		mockStorage.On("GetListing", mock.Anything, listing.Id).Return(listing, nil)

		body, _ := json.Marshal(api.NewOrder{ListingId: listing.Id})
		req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "seller1")
		rr := httptest.NewRecorder()

		handler.PlaceOrder(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockGateway.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything)
		mockStorage.AssertNotCalled(t, "ReserveListing", mock.Anything, mock.Anything)
	})

	t.Run("Listing Already Sold", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockGateway := new(payments_mocks.Gateway)
		handler := newTestHandler(mockStorage, mockGateway, nil)

		listing := activeListing()
		listing.IsSold = true
		mockStorage.On("GetListing", mock.Anything, listing.Id).Return(listing, nil)

		body, _ := json.Marshal(api.NewOrder{ListingId: listing.Id})
		req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "buyer1")
		rr := httptest.NewRecorder()

		handler.PlaceOrder(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Loses Reservation Race", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockGateway := new(payments_mocks.Gateway)
		handler := newTestHandler(mockStorage, mockGateway, nil)

		listing := activeListing()
		mockStorage.On("GetListing", mock.Anything, listing.Id).Return(listing, nil)
		mockGateway.On("CreateCheckout", mock.Anything, mock.Anything).Return(&payments.Payment{ID: "pay-123"}, nil)
		mockStorage.On("ReserveListing", mock.Anything, mock.Anything).Return(nil, storage.ErrAlreadySold)

		body, _ := json.Marshal(api.NewOrder{ListingId: listing.Id})
		req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "buyer1")
		rr := httptest.NewRecorder()

		handler.PlaceOrder(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Gateway Unavailable", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockGateway := new(payments_mocks.Gateway)
		handler := newTestHandler(mockStorage, mockGateway, nil)

		listing := activeListing()
		mockStorage.On("GetListing", mock.Anything, listing.Id).Return(listing, nil)
		mockGateway.On("CreateCheckout", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		body, _ := json.Marshal(api.NewOrder{ListingId: listing.Id})
		req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "buyer1")
		rr := httptest.NewRecorder()

		handler.PlaceOrder(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		mockStorage.AssertNotCalled(t, "ReserveListing", mock.Anything, mock.Anything)
	})
}

func TestConfirmTransactionById(t *testing.T) {
	t.Run("Second Confirmation Schedules Release", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockScheduler := new(scheduler_mocks.Scheduler)
		handler := newTestHandler(mockStorage, nil, mockScheduler)

		completedAt := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
		tx := &models.Transaction{
			Id:          "tx1",
			SellerId:    "seller1",
			BuyerId:     "buyer1",
			Status:      models.COMPLETED,
			CompletedAt: &completedAt,
		}

		mockStorage.On("ConfirmTransaction", mock.Anything, "tx1", "seller1", []string(nil)).
			Return(&storage.ConfirmResult{Completed: true, Transaction: tx}, nil)
		mockScheduler.On("ScheduleRelease", mock.Anything, scheduler.ReleaseMessage{
			TransactionID: "tx1",
			SellerID:      "seller1",
			CompletedAt:   completedAt,
		}).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/transactions/tx1/confirm", nil)
		req.Header.Set(middleware.ActorHeader, "seller1")
		rr := httptest.NewRecorder()

		handler.ConfirmTransactionById(rr, req, "tx1")

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("First Confirmation Does Not Schedule", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockScheduler := new(scheduler_mocks.Scheduler)
		handler := newTestHandler(mockStorage, nil, mockScheduler)

		tx := &models.Transaction{Id: "tx1", BuyerId: "buyer1", SellerId: "seller1", Status: models.PAID, BuyerConfirmed: true}
		mockStorage.On("ConfirmTransaction", mock.Anything, "tx1", "buyer1", []string(nil)).
			Return(&storage.ConfirmResult{Completed: false, Transaction: tx}, nil)

		req := httptest.NewRequest(http.MethodPost, "/transactions/tx1/confirm", nil)
		req.Header.Set(middleware.ActorHeader, "buyer1")
		rr := httptest.NewRecorder()

		handler.ConfirmTransactionById(rr, req, "tx1")

		assert.Equal(t, http.StatusOK, rr.Code)
		mockScheduler.AssertNotCalled(t, "ScheduleRelease", mock.Anything, mock.Anything)
	})

	t.Run("Stranger Is Rejected", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage, nil, nil)

		mockStorage.On("ConfirmTransaction", mock.Anything, "tx1", "stranger", []string(nil)).
			Return(nil, storage.ErrForbidden)

		req := httptest.NewRequest(http.MethodPost, "/transactions/tx1/confirm", nil)
		req.Header.Set(middleware.ActorHeader, "stranger")
		rr := httptest.NewRecorder()

		handler.ConfirmTransactionById(rr, req, "tx1")

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Evidence Is Forwarded", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage, nil, nil)

		tx := &models.Transaction{Id: "tx1", BuyerId: "buyer1", SellerId: "seller1", Status: models.PAID}
		mockStorage.On("ConfirmTransaction", mock.Anything, "tx1", "buyer1", []string{"https://cdn.example/shot.png"}).
			Return(&storage.ConfirmResult{Completed: false, Transaction: tx}, nil)

		body, _ := json.Marshal(api.ConfirmRequest{Evidence: []string{"https://cdn.example/shot.png"}})
		req := httptest.NewRequest(http.MethodPost, "/transactions/tx1/confirm", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "buyer1")
		rr := httptest.NewRecorder()

		handler.ConfirmTransactionById(rr, req, "tx1")

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestCancelTransactionById(t *testing.T) {
	pendingTx := &models.Transaction{Id: "tx1", BuyerId: "buyer1", SellerId: "seller1", Status: models.PENDING}

	t.Run("Buyer Cancels", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage, nil, nil)

		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(pendingTx, nil)
		mockStorage.On("CancelTransaction", mock.Anything, "tx1").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/transactions/tx1/cancel", nil)
		req.Header.Set(middleware.ActorHeader, "buyer1")
		rr := httptest.NewRecorder()

		handler.CancelTransactionById(rr, req, "tx1")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockStorage.AssertNotCalled(t, "GetWallet", mock.Anything, mock.Anything)
	})

	t.Run("Stranger Cannot Cancel", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage, nil, nil)

		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(pendingTx, nil)
		mockStorage.On("GetWallet", mock.Anything, "stranger").Return(&models.Wallet{UserId: "stranger"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/transactions/tx1/cancel", nil)
		req.Header.Set(middleware.ActorHeader, "stranger")
		rr := httptest.NewRecorder()

		handler.CancelTransactionById(rr, req, "tx1")

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertNotCalled(t, "CancelTransaction", mock.Anything, mock.Anything)
	})

	t.Run("Admin Cancels On Behalf", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage, nil, nil)

		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(pendingTx, nil)
		mockStorage.On("GetWallet", mock.Anything, "admin1").Return(&models.Wallet{UserId: "admin1", IsAdmin: true}, nil)
		mockStorage.On("CancelTransaction", mock.Anything, "tx1").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/transactions/tx1/cancel", nil)
		req.Header.Set(middleware.ActorHeader, "admin1")
		rr := httptest.NewRecorder()

		handler.CancelTransactionById(rr, req, "tx1")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not Cancellable", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage, nil, nil)

		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(pendingTx, nil)
		mockStorage.On("CancelTransaction", mock.Anything, "tx1").Return(storage.ErrTransactionNotCancellable)

		req := httptest.NewRequest(http.MethodPost, "/transactions/tx1/cancel", nil)
		req.Header.Set(middleware.ActorHeader, "buyer1")
		rr := httptest.NewRecorder()

		handler.CancelTransactionById(rr, req, "tx1")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
