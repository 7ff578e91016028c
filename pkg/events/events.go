// Package events publishes lifecycle events to the notification queue. The
// notifier worker consumes them and fans out to the configured channels;
// publishing is fire-and-forget from the API's point of view, so a queue
// outage never blocks a money movement.
package events

import (
	"context"
	"time"
)

// Event types emitted by the engine.
const (
	TypeOrderPlaced         = "order_placed"
	TypePaymentConfirmed    = "payment_confirmed"
	TypeDisputeOpened       = "dispute_opened"
	TypeDisputeResolved     = "dispute_resolved"
	TypeWithdrawalRequested = "withdrawal_requested"
	TypeWithdrawalProcessed = "withdrawal_processed"
	TypeFundsReleased       = "funds_released"
	TypeDepositConfirmed    = "deposit_confirmed"
)

// Event is the payload published for every significant lifecycle transition.
type Event struct {
	Type          string    `json:"type"`
	TransactionID string    `json:"transaction_id,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	Amount        int64     `json:"amount,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher defines the interface for emitting lifecycle events.
type Publisher interface {
	// Publish emits the event. Implementations must not block the caller
	// beyond a bounded network call.
	Publish(ctx context.Context, event Event) error
}

// NoOpPublisher is a publisher that does nothing.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
