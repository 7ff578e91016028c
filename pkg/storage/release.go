package storage

import (
	"context"

	"github.com/tradehub/escrow-settlement/pkg/models"
)

// ReleaseStore defines the privileged interface for moving escrowed funds to
// sellers. It is exposed only to the release worker and the on-demand sweep;
// each released transaction is a separate atomic credit-plus-status unit, so
// concurrent sweeps for the same seller cannot double-credit.
type ReleaseStore interface {
	// ListReleasableTransactions retrieves the seller's completed transactions
	// whose hold period has elapsed. Disputed transactions never match.
	ListReleasableTransactions(ctx context.Context, sellerID string) ([]models.Transaction, error)

	// ReleaseTransaction credits the seller's wallet with the stored net
	// amount and flips the transaction from completed to released,
	// atomically. Releasing a transaction that is no longer completed is a
	// no-op; the boolean reports whether this call performed the release.
	ReleaseTransaction(ctx context.Context, tx *models.Transaction) (bool, error)

	// ReleaseEligibleFunds releases every eligible transaction for the seller
	// and returns the total cents credited. Safe to invoke repeatedly or
	// concurrently: the per-transaction status guard makes replays no-ops.
	ReleaseEligibleFunds(ctx context.Context, sellerID string) (int64, error)
}
