package storage

import (
	"context"

	"github.com/tradehub/escrow-settlement/pkg/models"
)

// ListingStore defines the interface for managing listings.
type ListingStore interface {
	// CreateListing persists a new listing with is_sold = false.
	CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error)

	// GetListing retrieves a listing by its ID.
	GetListing(ctx context.Context, listingID string) (*models.Listing, error)

	// ReserveListing atomically flips the listing's sold flag and creates the
	// pending transaction record in one storage transaction. The sold re-check
	// happens inside the same isolation boundary as the flip: two concurrent
	// reservations yield exactly one success and one ErrAlreadySold.
	ReserveListing(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
}
