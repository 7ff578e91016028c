// Package scheduler enqueues completed transactions for the delayed release
// worker. The hold period is measured in business days, which SQS cannot
// express directly: messages carry the completion timestamp and the worker
// re-enqueues anything whose hold has not yet elapsed.
package scheduler

import (
	"context"
	"time"
)

// ReleaseMessage is the payload queued for the release worker.
type ReleaseMessage struct {
	TransactionID string    `json:"transaction_id"`
	SellerID      string    `json:"seller_id"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Scheduler defines the interface for deferring a transaction's fund release.
type Scheduler interface {
	// ScheduleRelease enqueues the transaction for release once its
	// business-day hold elapses.
	ScheduleRelease(ctx context.Context, msg ReleaseMessage) error
}
