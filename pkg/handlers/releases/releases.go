package releases

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tradehub/escrow-settlement/pkg/api"
	"github.com/tradehub/escrow-settlement/pkg/events"
	"github.com/tradehub/escrow-settlement/pkg/middleware"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// ReleasesHandler holds the dependencies for the on-demand release sweep.
type ReleasesHandler struct {
	Store     storage.ReleaseStore
	Wallets   storage.WalletStore
	Publisher events.Publisher
	Logger    *slog.Logger
}

// NewReleasesHandler creates a new ReleasesHandler.
func NewReleasesHandler(store storage.ReleaseStore, wallets storage.WalletStore, publisher events.Publisher, logger *slog.Logger) *ReleasesHandler {
	return &ReleasesHandler{Store: store, Wallets: wallets, Publisher: publisher, Logger: logger}
}

// ReleaseFunds sweeps the seller's completed transactions whose hold has
// elapsed and credits the net amounts. Sellers may sweep their own funds;
// anyone else needs admin rights. The sweep is a no-op when nothing is
// eligible, so calling it eagerly is harmless.
func (h *ReleasesHandler) ReleaseFunds(w http.ResponseWriter, r *http.Request, sellerId string) {
	actorID := middleware.ActorID(r)
	if actorID != sellerId {
		wallet, err := h.Wallets.GetWallet(r.Context(), actorID)
		if err != nil || !wallet.IsAdmin {
			http.Error(w, "Only the seller or an admin may trigger a release", http.StatusForbidden)
			return
		}
	}

	released, err := h.Store.ReleaseEligibleFunds(r.Context(), sellerId)
	if err != nil {
		h.Logger.Error("release sweep failed",
			slog.String("seller_id", sellerId),
			slog.Int64("released", released),
			slog.String("error", err.Error()))
		http.Error(w, fmt.Sprintf("Failed to release funds: %v", err), http.StatusInternalServerError)
		return
	}

	if released > 0 {
		// Do not fail the whole request if the event publish fails.
		if err := h.Publisher.Publish(r.Context(), events.Event{
			Type:   events.TypeFundsReleased,
			UserID: sellerId,
			Amount: released,
		}); err != nil {
			h.Logger.Error("failed to publish release event", slog.String("seller_id", sellerId), slog.String("error", err.Error()))
		}
	}

	resp := api.ReleaseSummary{SellerId: sellerId, ReleasedAmount: released}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
