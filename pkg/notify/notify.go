// Package notify fans marketplace lifecycle events out to operator-facing
// channels. The notifier worker feeds it from the event queue; a failing
// channel is logged and skipped so one webhook outage cannot hold the queue.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tradehub/escrow-settlement/pkg/events"
)

// Sender is the interface each notification channel implements.
type Sender interface {
	// Send delivers a notification with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name returns the channel identifier, e.g. "telegram".
	Name() string
}

// Notifier renders lifecycle events and dispatches them to every configured
// sender. An allow-list of event types filters noise; an empty list lets
// everything through.
type Notifier struct {
	senders []Sender
	allowed map[string]bool
	logger  *slog.Logger
}

// NewNotifier creates a Notifier delivering to the given senders, forwarding
// only the listed event types (all of them when the list is empty).
func NewNotifier(senders []Sender, eventTypes []string, logger *slog.Logger) *Notifier {
	allowed := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		allowed[strings.TrimSpace(t)] = true
	}
	return &Notifier{
		senders: senders,
		allowed: allowed,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// HandleEvent renders and dispatches a single lifecycle event.
func (n *Notifier) HandleEvent(ctx context.Context, event events.Event) error {
	if len(n.allowed) > 0 && !n.allowed[event.Type] {
		n.logger.DebugContext(ctx, "event filtered out", slog.String("type", event.Type))
		return nil
	}

	title, message := render(event)
	return n.dispatch(ctx, title, message)
}

// render turns an event into a channel-agnostic title and body.
func render(event events.Event) (string, string) {
	amount := formatCents(event.Amount)

	var title string
	switch event.Type {
	case events.TypeOrderPlaced:
		title = "Order placed"
	case events.TypePaymentConfirmed:
		title = "Payment confirmed"
	case events.TypeDisputeOpened:
		title = "Dispute opened"
	case events.TypeDisputeResolved:
		title = "Dispute resolved"
	case events.TypeWithdrawalRequested:
		title = "Withdrawal requested"
	case events.TypeWithdrawalProcessed:
		title = "Withdrawal processed"
	case events.TypeFundsReleased:
		title = "Funds released"
	case events.TypeDepositConfirmed:
		title = "Deposit confirmed"
	default:
		title = event.Type
	}

	var parts []string
	if event.TransactionID != "" {
		parts = append(parts, "transaction "+event.TransactionID)
	}
	if event.UserID != "" {
		parts = append(parts, "user "+event.UserID)
	}
	if event.Amount != 0 {
		parts = append(parts, amount)
	}
	if event.Detail != "" {
		parts = append(parts, event.Detail)
	}

	return title, strings.Join(parts, " | ")
}

// formatCents renders integer cents as a decimal currency string.
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sR$%d.%02d", sign, cents/100, cents%100)
}

// dispatch delivers to every sender, collecting failures instead of stopping
// at the first one.
func (n *Notifier) dispatch(ctx context.Context, title, message string) error {
	var failed []string
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("error", err.Error()),
			)
			failed = append(failed, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		n.logger.DebugContext(ctx, "notification sent",
			slog.String("sender", s.Name()),
			slog.String("title", title),
		)
	}

	if len(failed) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(failed), strings.Join(failed, "; "))
	}
	return nil
}
