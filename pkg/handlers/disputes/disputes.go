package disputes

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tradehub/escrow-settlement/pkg/api"
	"github.com/tradehub/escrow-settlement/pkg/events"
	"github.com/tradehub/escrow-settlement/pkg/mapping"
	"github.com/tradehub/escrow-settlement/pkg/middleware"
	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// MinReasonLength is the minimum dispute reason length, after trimming.
// One-word disputes give the arbitrator nothing to work with.
const MinReasonLength = 10

// DisputesHandler holds the dependencies for dispute-related handlers.
type DisputesHandler struct {
	Store     storage.ApiStore
	Publisher events.Publisher
	Logger    *slog.Logger
}

// NewDisputesHandler creates a new DisputesHandler.
func NewDisputesHandler(store storage.ApiStore, publisher events.Publisher, logger *slog.Logger) *DisputesHandler {
	return &DisputesHandler{Store: store, Publisher: publisher, Logger: logger}
}

// OpenDispute handles the logic for a buyer challenging a transaction.
func (h *DisputesHandler) OpenDispute(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorID(r)

	var newDispute api.NewDispute
	if err := json.NewDecoder(r.Body).Decode(&newDispute); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if len(strings.TrimSpace(newDispute.Reason)) < MinReasonLength {
		http.Error(w, fmt.Sprintf("Reason must be at least %d characters", MinReasonLength), http.StatusBadRequest)
		return
	}

	domainTx, err := h.Store.GetTransaction(r.Context(), newDispute.TransactionId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve transaction: %v", err), http.StatusInternalServerError)
		}
		return
	}
	if domainTx.BuyerId != actorID {
		http.Error(w, "Only the buyer may open a dispute", http.StatusForbidden)
		return
	}

	domainDispute := mapping.ToDomainNewDispute(&newDispute, actorID)

	createdDispute, err := h.Store.OpenDispute(r.Context(), domainDispute)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyDisputed):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, storage.ErrNotDisputable):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to open dispute: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Do not fail the whole request if the event publish fails.
	if err := h.Publisher.Publish(r.Context(), events.Event{
		Type:          events.TypeDisputeOpened,
		TransactionID: createdDispute.TransactionId,
		UserID:        actorID,
		Amount:        domainTx.Amount,
		Detail:        createdDispute.Reason,
	}); err != nil {
		h.Logger.Error("failed to publish dispute event", slog.String("dispute_id", createdDispute.Id), slog.String("error", err.Error()))
	}

	apiDispute := mapping.ToApiDispute(createdDispute)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiDispute); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetDisputeById handles the logic for retrieving a dispute by its ID.
func (h *DisputesHandler) GetDisputeById(w http.ResponseWriter, r *http.Request, disputeId string) {
	domainDispute, err := h.Store.GetDispute(r.Context(), disputeId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Dispute not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve dispute: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiDispute := mapping.ToApiDispute(domainDispute)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiDispute); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListOpenDisputes handles the logic for retrieving all unresolved disputes.
func (h *DisputesHandler) ListOpenDisputes(w http.ResponseWriter, r *http.Request) {
	domainDisputes, err := h.Store.ListOpenDisputes(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve disputes: %v", err), http.StatusInternalServerError)
		return
	}

	apiDisputes := make([]*api.Dispute, len(domainDisputes))
	for i, dispute := range domainDisputes {
		apiDisputes[i] = mapping.ToApiDispute(&dispute)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiDisputes); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ResolveDisputeById handles the arbitrated outcome of a dispute. The storage
// layer enforces that a party to the transaction cannot arbitrate it, even if
// they carry admin rights.
func (h *DisputesHandler) ResolveDisputeById(w http.ResponseWriter, r *http.Request, disputeId string) {
	actorID := middleware.ActorID(r)

	var req api.ResolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	resolution := models.DisputeResolution(req.Resolution)
	if resolution != models.RefundBuyer && resolution != models.ReleaseSeller {
		http.Error(w, fmt.Sprintf("Unknown resolution %q", req.Resolution), http.StatusBadRequest)
		return
	}

	err := h.Store.ResolveDispute(r.Context(), disputeId, actorID, resolution)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Dispute not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrDisputeResolved):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, storage.ErrForbidden):
			http.Error(w, "A party to the transaction cannot arbitrate it", http.StatusForbidden)
		default:
			http.Error(w, fmt.Sprintf("Failed to resolve dispute: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Do not fail the whole request if the event publish fails.
	if err := h.Publisher.Publish(r.Context(), events.Event{
		Type:   events.TypeDisputeResolved,
		UserID: actorID,
		Detail: string(resolution),
	}); err != nil {
		h.Logger.Error("failed to publish resolution event", slog.String("dispute_id", disputeId), slog.String("error", err.Error()))
	}

	w.WriteHeader(http.StatusNoContent)
}
