package storage

import (
	"context"

	"github.com/tradehub/escrow-settlement/pkg/models"
)

// WithdrawalStore defines the interface for the withdrawal gate.
type WithdrawalStore interface {
	// RequestWithdrawal debits the wallet immediately (pessimistic hold) and
	// creates a pending withdrawal in one storage transaction. The first
	// withdrawal permanently binds the payout key to the account; later
	// requests must present the same key or fail with ErrPayoutKeyMismatch.
	RequestWithdrawal(ctx context.Context, w *models.Withdrawal) (*models.Withdrawal, error)

	// GetWithdrawal retrieves a withdrawal by its ID.
	GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error)

	// ListPendingWithdrawals retrieves all withdrawals awaiting processing.
	ListPendingWithdrawals(ctx context.Context) ([]models.Withdrawal, error)

	// ApproveWithdrawal marks a pending withdrawal completed. No balance
	// change: the debit already happened at request time.
	ApproveWithdrawal(ctx context.Context, withdrawalID string) error

	// RejectWithdrawal refunds the held amount to the wallet and marks the
	// withdrawal rejected, atomically.
	RejectWithdrawal(ctx context.Context, withdrawalID string) error
}

// DepositStore defines the interface for wallet top-ups.
type DepositStore interface {
	// CreateDeposit persists a pending deposit carrying the external payment
	// reference. The wallet is credited only on confirmed payment.
	CreateDeposit(ctx context.Context, d *models.Deposit) (*models.Deposit, error)

	// GetDeposit retrieves a deposit by its ID.
	GetDeposit(ctx context.Context, depositID string) (*models.Deposit, error)
}
