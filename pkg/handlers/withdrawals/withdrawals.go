package withdrawals

import (
	"context"
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
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// MinWithdrawalAmount is the smallest payout the platform will process, in
// cents. Below this the payout rail's flat cost exceeds the transfer.
const MinWithdrawalAmount = 1000

// WithdrawalsHandler holds the dependencies for withdrawal-related handlers.
type WithdrawalsHandler struct {
	Store     storage.ApiStore
	Publisher events.Publisher
	Logger    *slog.Logger
}

// NewWithdrawalsHandler creates a new WithdrawalsHandler.
func NewWithdrawalsHandler(store storage.ApiStore, publisher events.Publisher, logger *slog.Logger) *WithdrawalsHandler {
	return &WithdrawalsHandler{Store: store, Publisher: publisher, Logger: logger}
}

// RequestWithdrawal handles the logic for requesting a payout. The wallet is
// debited immediately; the payout key presented here is permanently bound to
// the account on first use.
func (h *WithdrawalsHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorID(r)

	var newWithdrawal api.NewWithdrawal
	if err := json.NewDecoder(r.Body).Decode(&newWithdrawal); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(newWithdrawal.PayoutKey) == "" {
		http.Error(w, "Payout key is required", http.StatusBadRequest)
		return
	}
	if newWithdrawal.Amount < MinWithdrawalAmount {
		http.Error(w, fmt.Sprintf("Minimum withdrawal is %d cents", MinWithdrawalAmount), http.StatusUnprocessableEntity)
		return
	}

	domainWithdrawal := mapping.ToDomainNewWithdrawal(&newWithdrawal, actorID)

	createdWithdrawal, err := h.Store.RequestWithdrawal(r.Context(), domainWithdrawal)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Wallet not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrInsufficientFunds):
			http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrPayoutKeyMismatch):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to request withdrawal: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Do not fail the whole request if the event publish fails.
	if err := h.Publisher.Publish(r.Context(), events.Event{
		Type:   events.TypeWithdrawalRequested,
		UserID: actorID,
		Amount: createdWithdrawal.Amount,
	}); err != nil {
		h.Logger.Error("failed to publish withdrawal event", slog.String("withdrawal_id", createdWithdrawal.Id), slog.String("error", err.Error()))
	}

	apiWithdrawal := mapping.ToApiWithdrawal(createdWithdrawal)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiWithdrawal); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetWithdrawalById handles the logic for retrieving a withdrawal. Only the
// owner or an admin may see it.
func (h *WithdrawalsHandler) GetWithdrawalById(w http.ResponseWriter, r *http.Request, withdrawalId string) {
	actorID := middleware.ActorID(r)

	domainWithdrawal, err := h.Store.GetWithdrawal(r.Context(), withdrawalId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Withdrawal not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve withdrawal: %v", err), http.StatusInternalServerError)
		}
		return
	}

	if domainWithdrawal.UserId != actorID && !h.isAdmin(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	apiWithdrawal := mapping.ToApiWithdrawal(domainWithdrawal)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiWithdrawal); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListPendingWithdrawals handles the logic for retrieving the processing queue.
func (h *WithdrawalsHandler) ListPendingWithdrawals(w http.ResponseWriter, r *http.Request) {
	domainWithdrawals, err := h.Store.ListPendingWithdrawals(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve withdrawals: %v", err), http.StatusInternalServerError)
		return
	}

	apiWithdrawals := make([]*api.Withdrawal, len(domainWithdrawals))
	for i, withdrawal := range domainWithdrawals {
		apiWithdrawals[i] = mapping.ToApiWithdrawal(&withdrawal)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiWithdrawals); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ApproveWithdrawalById handles the logic for completing a pending payout.
func (h *WithdrawalsHandler) ApproveWithdrawalById(w http.ResponseWriter, r *http.Request, withdrawalId string) {
	h.processWithdrawal(w, r, withdrawalId, "approved", h.Store.ApproveWithdrawal)
}

// RejectWithdrawalById handles the logic for rejecting a pending payout and
// refunding the held amount.
func (h *WithdrawalsHandler) RejectWithdrawalById(w http.ResponseWriter, r *http.Request, withdrawalId string) {
	h.processWithdrawal(w, r, withdrawalId, "rejected", h.Store.RejectWithdrawal)
}

func (h *WithdrawalsHandler) processWithdrawal(w http.ResponseWriter, r *http.Request, withdrawalId, outcome string, op func(ctx context.Context, withdrawalID string) error) {
	err := op(r.Context(), withdrawalId)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Withdrawal not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrWithdrawalNotPending):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to process withdrawal: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Do not fail the whole request if the event publish fails.
	if err := h.Publisher.Publish(r.Context(), events.Event{
		Type:   events.TypeWithdrawalProcessed,
		UserID: middleware.ActorID(r),
		Detail: outcome,
	}); err != nil {
		h.Logger.Error("failed to publish withdrawal event", slog.String("withdrawal_id", withdrawalId), slog.String("error", err.Error()))
	}

	w.WriteHeader(http.StatusNoContent)
}

// isAdmin reports whether the acting user's wallet carries admin rights.
func (h *WithdrawalsHandler) isAdmin(r *http.Request) bool {
	wallet, err := h.Store.GetWallet(r.Context(), middleware.ActorID(r))
	return err == nil && wallet.IsAdmin
}
