package storage

import (
	"context"

	"github.com/tradehub/escrow-settlement/pkg/models"
)

// DisputeStore defines the interface for opening and arbitrating disputes.
type DisputeStore interface {
	// OpenDispute creates the dispute record and moves the transaction to
	// disputed in one storage transaction, freezing it out of the release
	// sweep. Only non-terminal, non-disputed transactions qualify.
	OpenDispute(ctx context.Context, dispute *models.Dispute) (*models.Dispute, error)

	// GetDispute retrieves a dispute by its ID.
	GetDispute(ctx context.Context, disputeID string) (*models.Dispute, error)

	// ListOpenDisputes retrieves all unresolved disputes.
	ListOpenDisputes(ctx context.Context) ([]models.Dispute, error)

	// ResolveDispute applies the arbitrated outcome: refund_buyer credits the
	// buyer with the full amount and marks the transaction refunded;
	// release_seller credits the seller with the net amount and marks it
	// released. Closing the dispute, mutating the transaction and crediting
	// the wallet happen in a single atomic unit; a second resolution attempt
	// fails with ErrDisputeResolved and moves no money.
	ResolveDispute(ctx context.Context, disputeID, resolverID string, resolution models.DisputeResolution) error
}
