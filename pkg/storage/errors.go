package storage

import "errors"

// Domain errors returned by the storage layer. Handlers translate these into
// specific, actionable HTTP responses; anything not in this list is an
// infrastructure failure and surfaces as an internal error, with state left
// unchanged.
var (
	// ErrNotFound is returned when a listing, transaction, dispute, wallet,
	// withdrawal or deposit does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadySold is returned when the listing's sold flag flipped before
	// the caller's reservation could claim it.
	ErrAlreadySold = errors.New("item already sold")

	// ErrSelfPurchase is returned when a buyer attempts to buy their own listing.
	ErrSelfPurchase = errors.New("cannot buy your own item")

	// ErrInsufficientFunds is returned when a wallet balance cannot cover a
	// requested debit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrForbidden is returned when the acting user is not allowed to perform
	// the transition (wrong party, or a party acting as arbitrator).
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyConfirmed is returned when a party re-submits a confirmation
	// they already made.
	ErrAlreadyConfirmed = errors.New("you already confirmed this transaction")

	// ErrNotConfirmable is returned when a confirmation arrives before payment
	// or after the transaction left the paid state.
	ErrNotConfirmable = errors.New("transaction is not awaiting confirmation")

	// ErrAlreadyDisputed is returned when the transaction already carries a
	// dispute.
	ErrAlreadyDisputed = errors.New("transaction already disputed")

	// ErrNotDisputable is returned when a dispute is opened against a terminal
	// transaction.
	ErrNotDisputable = errors.New("transaction can no longer be disputed")

	// ErrDisputeResolved is returned when a second resolution is attempted on
	// an already-resolved dispute.
	ErrDisputeResolved = errors.New("dispute already resolved")

	// ErrTransactionNotCancellable is returned when a cancellation targets a
	// transaction that is no longer pending.
	ErrTransactionNotCancellable = errors.New("transaction not in a cancellable state")

	// ErrPayoutKeyMismatch is returned when a withdrawal presents a payout key
	// different from the one bound to the account. The binding is write-once.
	ErrPayoutKeyMismatch = errors.New("payout key does not match the registered key for this account")

	// ErrWithdrawalNotPending is returned when an approval or rejection targets
	// a withdrawal that was already processed.
	ErrWithdrawalNotPending = errors.New("withdrawal is not pending")

	// ErrWalletExists is returned when a wallet is created twice for one user.
	ErrWalletExists = errors.New("wallet already exists")
)
