package storage

import (
	"context"

	"github.com/tradehub/escrow-settlement/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByUserID retrieves all transactions in which the user is
	// buyer or seller.
	ListTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error)
}

// ConfirmResult describes the effect of a party's confirmation.
type ConfirmResult struct {
	// Completed is true when this confirmation was the second one and the
	// transaction moved to the completed state.
	Completed bool
	// Transaction is the post-confirmation state.
	Transaction *models.Transaction
}

// TransactionManager defines the interface for advancing a transaction's
// lifecycle before settlement.
type TransactionManager interface {
	// ConfirmTransaction records the acting party's confirmation with optional
	// evidence. When the other party has already confirmed, the same atomic
	// update also stamps completed_at and moves the transaction to completed.
	// No funds move here; crediting is deferred to the release sweep.
	ConfirmTransaction(ctx context.Context, txID, userID string, evidence []string) (*ConfirmResult, error)

	// CancelTransaction cancels a pending transaction whose payment never
	// arrived. The listing stays sold; the sold flag is irreversible.
	CancelTransaction(ctx context.Context, txID string) error

	// ConfirmPayment advances the transaction (or deposit) matching the
	// external payment reference. Repeated delivery of the same callback is a
	// no-op, never an error.
	ConfirmPayment(ctx context.Context, paymentRef string) error
}

// TransactionStore combines the reader and manager interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionManager
}
