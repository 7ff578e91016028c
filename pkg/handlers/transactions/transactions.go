package transactions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tradehub/escrow-settlement/pkg/api"
	"github.com/tradehub/escrow-settlement/pkg/events"
	"github.com/tradehub/escrow-settlement/pkg/fees"
	"github.com/tradehub/escrow-settlement/pkg/mapping"
	"github.com/tradehub/escrow-settlement/pkg/middleware"
	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/payments"
	"github.com/tradehub/escrow-settlement/pkg/scheduler"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Store     storage.ApiStore
	Gateway   payments.Gateway
	Scheduler scheduler.Scheduler
	Publisher events.Publisher
	Logger    *slog.Logger
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(store storage.ApiStore, gateway payments.Gateway, sched scheduler.Scheduler, publisher events.Publisher, logger *slog.Logger) *TransactionsHandler {
	return &TransactionsHandler{Store: store, Gateway: gateway, Scheduler: sched, Publisher: publisher, Logger: logger}
}

// PlaceOrder handles the logic for purchasing a listing. The fee is computed
// and frozen here, the gateway checkout is created, and only then is the
// listing reserved: a reservation without a payment reference would be a
// claim we could never settle.
func (h *TransactionsHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	buyerID := middleware.ActorID(r)

	var newOrder api.NewOrder
	if err := json.NewDecoder(r.Body).Decode(&newOrder); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	listing, err := h.Store.GetListing(r.Context(), newOrder.ListingId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Listing not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve listing: %v", err), http.StatusInternalServerError)
		}
		return
	}

	if listing.SellerId == buyerID {
		http.Error(w, storage.ErrSelfPurchase.Error(), http.StatusUnprocessableEntity)
		return
	}
	if !listing.IsActive || listing.IsSold {
		http.Error(w, "Listing is not available", http.StatusConflict)
		return
	}

	quote := fees.Compute(listing.Price, listing.IsPromoted)
	domainTx := &models.Transaction{
		Id:            uuid.New().String(),
		ListingId:     listing.Id,
		BuyerId:       buyerID,
		SellerId:      listing.SellerId,
		Amount:        quote.Amount,
		Fee:           quote.Fee,
		NetAmount:     quote.Net,
		PaymentMethod: newOrder.PaymentMethod,
	}

	payment, err := h.Gateway.CreateCheckout(r.Context(), payments.Checkout{
		ReferenceID: domainTx.Id,
		Title:       listing.Title,
		Amount:      listing.Price,
	})
	if err != nil {
		h.Logger.Error("failed to create gateway checkout", slog.String("listing_id", listing.Id), slog.String("error", err.Error()))
		http.Error(w, "Payment gateway unavailable", http.StatusBadGateway)
		return
	}
	domainTx.PaymentRef = payment.ID

	createdTx, err := h.Store.ReserveListing(r.Context(), domainTx)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadySold) {
			http.Error(w, storage.ErrAlreadySold.Error(), http.StatusConflict)
		} else {
			h.Logger.Error("failed to reserve listing", slog.String("listing_id", listing.Id), slog.String("error", err.Error()))
			http.Error(w, fmt.Sprintf("Failed to place order: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Do not fail the whole request if the event publish fails.
	if err := h.Publisher.Publish(r.Context(), events.Event{
		Type:          events.TypeOrderPlaced,
		TransactionID: createdTx.Id,
		UserID:        buyerID,
		Amount:        createdTx.Amount,
		Detail:        listing.Title,
	}); err != nil {
		h.Logger.Error("failed to publish order event", slog.String("transaction_id", createdTx.Id), slog.String("error", err.Error()))
	}

	resp := api.CheckoutResponse{
		Transaction: mapping.ToApiTransaction(createdTx),
		PaymentId:   payment.ID,
		RedirectUrl: payment.RedirectURL,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetTransactionById handles the logic for retrieving a transaction by its ID.
func (h *TransactionsHandler) GetTransactionById(w http.ResponseWriter, r *http.Request, transactionId string) {
	domainTx, err := h.Store.GetTransaction(r.Context(), transactionId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve transaction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiTx := mapping.ToApiTransaction(domainTx)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTx); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListTransactions handles the logic for retrieving the acting user's
// transactions, as buyer or seller.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	domainTxs, err := h.Store.ListTransactionsByUserID(r.Context(), middleware.ActorID(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	apiTxs := make([]*api.Transaction, len(domainTxs))
	for i, tx := range domainTxs {
		apiTxs[i] = mapping.ToApiTransaction(&tx)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTxs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ConfirmTransactionById handles a party's delivery confirmation. When this
// confirmation is the second one, the transaction completes and the release
// is scheduled for after the hold period.
func (h *TransactionsHandler) ConfirmTransactionById(w http.ResponseWriter, r *http.Request, transactionId string) {
	actorID := middleware.ActorID(r)

	// The evidence body is optional.
	var req api.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.Store.ConfirmTransaction(r.Context(), transactionId, actorID, req.Evidence)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Transaction not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrForbidden):
			http.Error(w, "Only the buyer or the seller may confirm", http.StatusForbidden)
		case errors.Is(err, storage.ErrAlreadyConfirmed):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, storage.ErrNotConfirmable):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to confirm transaction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// If both parties have now confirmed, enqueue the delayed release. The
	// sweep worker also picks up completed transactions, so a lost enqueue
	// delays the payout but never loses it.
	if result.Completed && h.Scheduler != nil {
		msg := scheduler.ReleaseMessage{
			TransactionID: result.Transaction.Id,
			SellerID:      result.Transaction.SellerId,
			CompletedAt:   *result.Transaction.CompletedAt,
		}
		if err := h.Scheduler.ScheduleRelease(r.Context(), msg); err != nil {
			h.Logger.Error("transaction completed but release enqueue failed",
				slog.String("transaction_id", result.Transaction.Id),
				slog.String("error", err.Error()))
		}
	}

	apiTx := mapping.ToApiTransaction(result.Transaction)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTx); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// CancelTransactionById handles the logic for cancelling a transaction whose
// payment never arrived. Only a party to the transaction or an admin may
// cancel: the listing's sold flag is irreversible, so a stranger cancelling a
// pending purchase would strand the item.
func (h *TransactionsHandler) CancelTransactionById(w http.ResponseWriter, r *http.Request, transactionId string) {
	actorID := middleware.ActorID(r)

	domainTx, err := h.Store.GetTransaction(r.Context(), transactionId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve transaction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	if !domainTx.Party(actorID) {
		wallet, err := h.Store.GetWallet(r.Context(), actorID)
		if err != nil || !wallet.IsAdmin {
			http.Error(w, "Only a party to the transaction or an admin may cancel", http.StatusForbidden)
			return
		}
	}

	err = h.Store.CancelTransaction(r.Context(), transactionId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, storage.ErrTransactionNotCancellable) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to cancel transaction: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
