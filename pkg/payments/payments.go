// Package payments abstracts the external payment gateway. The engine never
// trusts client-reported payment state: money is collected by the gateway and
// acknowledged only through its server-to-server callback carrying the payment
// reference created here.
package payments

import "context"

// Checkout describes a payment to be collected by the gateway.
type Checkout struct {
	// ReferenceID ties the gateway payment back to our transaction or deposit.
	ReferenceID string
	// Title is the human-readable line item shown on the gateway's page.
	Title string
	// Amount is the charge in integer cents.
	Amount int64
	// PayerEmail is optional and only improves the gateway's fraud scoring.
	PayerEmail string
}

// StatusApproved is the only gateway payment status that moves money here.
// Everything else (pending, in_process, rejected, refunded) is ignored.
const StatusApproved = "approved"

// Payment is the gateway's handle for a created checkout.
type Payment struct {
	// ID is the gateway-side payment identifier.
	ID string
	// Status is the gateway's view of the payment, empty until collected.
	Status string
	// RedirectURL is where the buyer completes the payment.
	RedirectURL string
}

// Gateway creates checkouts with the external payment provider and verifies
// their outcome.
type Gateway interface {
	// CreateCheckout registers the charge with the gateway and returns the
	// redirect URL for the payer. The returned payment ID becomes the
	// payment_ref the callback will later present.
	CreateCheckout(ctx context.Context, checkout Checkout) (*Payment, error)
	// GetPayment fetches the current state of a payment by its gateway ID.
	// Callback bodies are unauthenticated hints; the status that gates a
	// wallet credit must come from this server-to-server lookup.
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}
