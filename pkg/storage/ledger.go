package storage

import (
	"context"

	"github.com/tradehub/escrow-settlement/pkg/models"
)

// LedgerReader exposes the audit trail of fund movements. Entries are
// append-only; nothing in the system updates or deletes them.
type LedgerReader interface {
	// ListLedgerEntries retrieves the most recent ledger entries, newest first.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)
}
