package webhooks

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tradehub/escrow-settlement/pkg/events"
	"github.com/tradehub/escrow-settlement/pkg/payments"
	payments_mocks "github.com/tradehub/escrow-settlement/pkg/payments/mocks"
	storage_mocks "github.com/tradehub/escrow-settlement/pkg/storage/mocks"
)

func newTestHandler(store *storage_mocks.Storage, gateway *payments_mocks.Gateway) *WebhooksHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWebhooksHandler(store, gateway, &events.NoOpPublisher{}, logger)
}

func TestHandlePaymentNotification(t *testing.T) {
	t.Run("Confirms Approved Payment", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockGateway := new(payments_mocks.Gateway)
		handler := newTestHandler(mockStorage, mockGateway)

		mockGateway.On("GetPayment", mock.Anything, "pay-123").
			Return(&payments.Payment{ID: "pay-123", Status: payments.StatusApproved}, nil)
		mockStorage.On("ConfirmPayment", mock.Anything, "pay-123").Return(nil)

		body := `{"type":"payment","data":{"id":"pay-123"}}`
		req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandlePaymentNotification(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
	})

	t.Run("Ignores Non-Approved Payment", func(t *testing.T) {
		for _, status := range []string{"pending", "in_process", "rejected"} {
			mockStorage := new(storage_mocks.Storage)
			mockGateway := new(payments_mocks.Gateway)
			handler := newTestHandler(mockStorage, mockGateway)

			mockGateway.On("GetPayment", mock.Anything, "pay-123").
				Return(&payments.Payment{ID: "pay-123", Status: status}, nil)

			body := `{"type":"payment","data":{"id":"pay-123"}}`
			req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(body))
			rr := httptest.NewRecorder()

			handler.HandlePaymentNotification(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			mockStorage.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything)
		}
	})

	t.Run("Ignores Other Event Types", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockGateway := new(payments_mocks.Gateway)
		handler := newTestHandler(mockStorage, mockGateway)

		body := `{"type":"merchant_order","data":{"id":"order-1"}}`
		req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandlePaymentNotification(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockGateway.AssertNotCalled(t, "GetPayment", mock.Anything, mock.Anything)
		mockStorage.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newTestHandler(mockStorage, new(payments_mocks.Gateway))

		req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader("not json"))
		rr := httptest.NewRecorder()

		handler.HandlePaymentNotification(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Gateway Lookup Failure Requests Retry", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockGateway := new(payments_mocks.Gateway)
		handler := newTestHandler(mockStorage, mockGateway)

		mockGateway.On("GetPayment", mock.Anything, "pay-123").Return(nil, assert.AnError)

		body := `{"type":"payment","data":{"id":"pay-123"}}`
		req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandlePaymentNotification(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		mockStorage.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything)
	})

	t.Run("Storage Failure Requests Retry", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockGateway := new(payments_mocks.Gateway)
		handler := newTestHandler(mockStorage, mockGateway)

		mockGateway.On("GetPayment", mock.Anything, "pay-123").
			Return(&payments.Payment{ID: "pay-123", Status: payments.StatusApproved}, nil)
		mockStorage.On("ConfirmPayment", mock.Anything, "pay-123").Return(assert.AnError)

		body := `{"type":"payment","data":{"id":"pay-123"}}`
		req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandlePaymentNotification(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
