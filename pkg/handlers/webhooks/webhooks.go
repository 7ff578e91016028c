package webhooks

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tradehub/escrow-settlement/pkg/api"
	"github.com/tradehub/escrow-settlement/pkg/events"
	"github.com/tradehub/escrow-settlement/pkg/payments"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// WebhooksHandler holds the dependencies for the payment gateway callback.
type WebhooksHandler struct {
	Store     storage.TransactionManager
	Gateway   payments.Gateway
	Publisher events.Publisher
	Logger    *slog.Logger
}

// NewWebhooksHandler creates a new WebhooksHandler.
func NewWebhooksHandler(store storage.TransactionManager, gateway payments.Gateway, publisher events.Publisher, logger *slog.Logger) *WebhooksHandler {
	return &WebhooksHandler{Store: store, Gateway: gateway, Publisher: publisher, Logger: logger}
}

// HandlePaymentNotification processes the gateway's server-to-server callback.
// The notification body is an unauthenticated hint carrying only the payment
// ID; the payment is fetched back from the gateway and money moves only when
// its verified status is approved. The gateway retries on any non-2xx
// response, so unknown references, non-approved statuses and replays return
// 200; only infrastructure failures return an error status to trigger a
// retry.
func (h *WebhooksHandler) HandlePaymentNotification(w http.ResponseWriter, r *http.Request) {
	var notification api.PaymentNotification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		http.Error(w, "Invalid notification body", http.StatusBadRequest)
		return
	}

	if notification.Type != "payment" || notification.Data.Id == "" {
		// Not a payment event. Acknowledge so the gateway stops resending.
		w.WriteHeader(http.StatusOK)
		return
	}

	payment, err := h.Gateway.GetPayment(r.Context(), notification.Data.Id)
	if err != nil {
		h.Logger.Error("failed to verify payment with gateway", slog.String("payment_ref", notification.Data.Id), slog.String("error", err.Error()))
		http.Error(w, "Failed to verify payment", http.StatusBadGateway)
		return
	}

	if payment.Status != payments.StatusApproved {
		// Created, pending and rejected payments all notify too. Acknowledge
		// without advancing anything; an approval will arrive as its own
		// callback.
		h.Logger.Info("ignoring non-approved payment notification",
			slog.String("payment_ref", notification.Data.Id),
			slog.String("status", payment.Status))
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.Store.ConfirmPayment(r.Context(), notification.Data.Id); err != nil {
		h.Logger.Error("failed to confirm payment", slog.String("payment_ref", notification.Data.Id), slog.String("error", err.Error()))
		http.Error(w, "Failed to process notification", http.StatusInternalServerError)
		return
	}

	// Do not fail the callback if the event publish fails.
	if err := h.Publisher.Publish(r.Context(), events.Event{
		Type:   events.TypePaymentConfirmed,
		Detail: notification.Data.Id,
	}); err != nil {
		h.Logger.Error("failed to publish payment event", slog.String("payment_ref", notification.Data.Id), slog.String("error", err.Error()))
	}

	w.WriteHeader(http.StatusOK)
}
