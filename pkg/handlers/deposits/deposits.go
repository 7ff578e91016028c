package deposits

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tradehub/escrow-settlement/pkg/api"
	"github.com/tradehub/escrow-settlement/pkg/mapping"
	"github.com/tradehub/escrow-settlement/pkg/middleware"
	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/payments"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// MinDepositAmount is the smallest top-up the platform accepts, in cents.
const MinDepositAmount = 500

// DepositsHandler holds the dependencies for deposit-related handlers.
type DepositsHandler struct {
	Store   storage.ApiStore
	Gateway payments.Gateway
	Logger  *slog.Logger
}

// NewDepositsHandler creates a new DepositsHandler.
func NewDepositsHandler(store storage.ApiStore, gateway payments.Gateway, logger *slog.Logger) *DepositsHandler {
	return &DepositsHandler{Store: store, Gateway: gateway, Logger: logger}
}

// CreateDeposit handles the logic for starting a wallet top-up. The deposit
// stays pending until the gateway callback confirms the payment reference;
// nothing is credited here.
func (h *DepositsHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorID(r)

	var newDeposit api.NewDeposit
	if err := json.NewDecoder(r.Body).Decode(&newDeposit); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if newDeposit.Amount < MinDepositAmount {
		http.Error(w, fmt.Sprintf("Minimum deposit is %d cents", MinDepositAmount), http.StatusUnprocessableEntity)
		return
	}

	// A deposit without a wallet to credit would be orphaned money.
	if _, err := h.Store.GetWallet(r.Context(), actorID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	domainDeposit := &models.Deposit{
		Id:     uuid.New().String(),
		UserId: actorID,
		Amount: newDeposit.Amount,
	}

	payment, err := h.Gateway.CreateCheckout(r.Context(), payments.Checkout{
		ReferenceID: domainDeposit.Id,
		Title:       "Wallet deposit",
		Amount:      newDeposit.Amount,
	})
	if err != nil {
		h.Logger.Error("failed to create gateway checkout", slog.String("user_id", actorID), slog.String("error", err.Error()))
		http.Error(w, "Payment gateway unavailable", http.StatusBadGateway)
		return
	}
	domainDeposit.PaymentRef = payment.ID

	createdDeposit, err := h.Store.CreateDeposit(r.Context(), domainDeposit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create deposit: %v", err), http.StatusInternalServerError)
		return
	}

	resp := mapping.ToApiDeposit(createdDeposit)
	resp.RedirectUrl = payment.RedirectURL
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetDepositById handles the logic for retrieving a deposit by its ID.
func (h *DepositsHandler) GetDepositById(w http.ResponseWriter, r *http.Request, depositId string) {
	domainDeposit, err := h.Store.GetDeposit(r.Context(), depositId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Deposit not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve deposit: %v", err), http.StatusInternalServerError)
		}
		return
	}

	if domainDeposit.UserId != middleware.ActorID(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	resp := mapping.ToApiDeposit(domainDeposit)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
