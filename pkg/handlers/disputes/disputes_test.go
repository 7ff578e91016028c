package disputes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tradehub/escrow-settlement/pkg/api"
	"github.com/tradehub/escrow-settlement/pkg/events"
	"github.com/tradehub/escrow-settlement/pkg/middleware"
	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/storage"
	storage_mocks "github.com/tradehub/escrow-settlement/pkg/storage/mocks"
)

func newTestHandler(store *storage_mocks.Storage) *DisputesHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDisputesHandler(store, &events.NoOpPublisher{}, logger)
}

func postDispute(handler *DisputesHandler, actor string, body api.NewDispute) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/disputes", bytes.NewReader(raw))
	req.Header.Set(middleware.ActorHeader, actor)
	rr := httptest.NewRecorder()
	handler.OpenDispute(rr, req)
	return rr
}

func TestOpenDispute(t *testing.T) {
	tx := &models.Transaction{Id: "tx1", BuyerId: "buyer1", SellerId: "seller1", Amount: 15000, Status: models.PAID}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage)

		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(tx, nil)
		mockStorage.On("OpenDispute", mock.Anything, mock.MatchedBy(func(d *models.Dispute) bool {
			return d.TransactionId == "tx1" && d.ReporterId == "buyer1"
		})).Return(&models.Dispute{Id: "d1", TransactionId: "tx1", ReporterId: "buyer1", Status: models.DisputeOpen}, nil)

		rr := postDispute(handler, "buyer1", api.NewDispute{TransactionId: "tx1", Reason: "item was never delivered"})

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Reason Too Short", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage)

		rr := postDispute(handler, "buyer1", api.NewDispute{TransactionId: "tx1", Reason: "scam"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "OpenDispute", mock.Anything, mock.Anything)
	})

	t.Run("Padded Reason Is Still Too Short", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage)

		rr := postDispute(handler, "buyer1", api.NewDispute{TransactionId: "tx1", Reason: "   scam      "})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Only The Buyer May Open", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage)

		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(tx, nil)

		rr := postDispute(handler, "seller1", api.NewDispute{TransactionId: "tx1", Reason: "buyer never paid me anything"})

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertNotCalled(t, "OpenDispute", mock.Anything, mock.Anything)
	})

	t.Run("Already Disputed", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage)

		mockStorage.On("GetTransaction", mock.Anything, "tx1").Return(tx, nil)
		mockStorage.On("OpenDispute", mock.Anything, mock.Anything).Return(nil, storage.ErrAlreadyDisputed)

		rr := postDispute(handler, "buyer1", api.NewDispute{TransactionId: "tx1", Reason: "item was never delivered"})

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestResolveDisputeById(t *testing.T) {
	resolve := func(handler *DisputesHandler, actor, resolution string) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(api.ResolveDisputeRequest{Resolution: resolution})
		req := httptest.NewRequest(http.MethodPost, "/disputes/d1/resolve", bytes.NewReader(raw))
		req.Header.Set(middleware.ActorHeader, actor)
		rr := httptest.NewRecorder()
		handler.ResolveDisputeById(rr, req, "d1")
		return rr
	}

	t.Run("Refund Buyer", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage)

		mockStorage.On("ResolveDispute", mock.Anything, "d1", "admin1", models.RefundBuyer).Return(nil)

		rr := resolve(handler, "admin1", "refund_buyer")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown Resolution", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage)

		rr := resolve(handler, "admin1", "split_the_difference")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "ResolveDispute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already Resolved", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage)

		mockStorage.On("ResolveDispute", mock.Anything, "d1", "admin1", models.ReleaseSeller).Return(storage.ErrDisputeResolved)

		rr := resolve(handler, "admin1", "release_seller")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Party Cannot Arbitrate", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage)

		mockStorage.On("ResolveDispute", mock.Anything, "d1", "buyer1", models.RefundBuyer).Return(storage.ErrForbidden)

		rr := resolve(handler, "buyer1", "refund_buyer")

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
