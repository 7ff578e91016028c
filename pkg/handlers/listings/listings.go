package listings

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tradehub/escrow-settlement/pkg/api"
	"github.com/tradehub/escrow-settlement/pkg/mapping"
	"github.com/tradehub/escrow-settlement/pkg/middleware"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// ListingsHandler holds the dependencies for listing-related handlers.
type ListingsHandler struct {
	Store storage.ListingStore
}

// NewListingsHandler creates a new ListingsHandler.
func NewListingsHandler(store storage.ListingStore) *ListingsHandler {
	return &ListingsHandler{Store: store}
}

// CreateListing handles the logic for putting an item up for sale. The acting
// user becomes the seller.
func (h *ListingsHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var newListing api.NewListing
	if err := json.NewDecoder(r.Body).Decode(&newListing); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(newListing.Title) == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}
	if newListing.Price <= 0 {
		http.Error(w, "Price must be positive", http.StatusBadRequest)
		return
	}

	domainListing := mapping.ToDomainNewListing(&newListing, middleware.ActorID(r))

	createdListing, err := h.Store.CreateListing(r.Context(), domainListing)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create listing: %v", err), http.StatusInternalServerError)
		return
	}

	apiListing := mapping.ToApiListing(createdListing)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiListing); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetListingById handles the logic for retrieving a listing by its ID.
func (h *ListingsHandler) GetListingById(w http.ResponseWriter, r *http.Request, listingId string) {
	domainListing, err := h.Store.GetListing(r.Context(), listingId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Listing not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve listing: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiListing := mapping.ToApiListing(domainListing)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiListing); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
