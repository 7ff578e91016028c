package models

import (
	"time"
)

// TransactionStatus defines the possible states of a purchase transaction.
type TransactionStatus string

const (
	// PENDING: reservation succeeded, waiting for the payment gateway.
	PENDING TransactionStatus = "pending"
	// PAID: gateway confirmed collection; waiting for both parties to confirm delivery.
	PAID TransactionStatus = "paid"
	// COMPLETED: both parties confirmed; net amount waits out the hold period.
	COMPLETED TransactionStatus = "completed"
	// DISPUTED: buyer opened a dispute; frozen out of the release sweep.
	DISPUTED TransactionStatus = "disputed"
	// RELEASED: net amount credited to the seller. Terminal.
	RELEASED TransactionStatus = "released"
	// REFUNDED: full amount credited back to the buyer. Terminal.
	REFUNDED TransactionStatus = "refunded"
	// CANCELLED: payment never arrived. Terminal.
	CANCELLED TransactionStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed from the status.
func (s TransactionStatus) Terminal() bool {
	return s == RELEASED || s == REFUNDED || s == CANCELLED
}

// DisputeStatus defines the possible states of a dispute.
type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeResolved DisputeStatus = "resolved"
)

// DisputeResolution is the arbitrated outcome of a dispute.
type DisputeResolution string

const (
	RefundBuyer   DisputeResolution = "refund_buyer"
	ReleaseSeller DisputeResolution = "release_seller"
)

// WithdrawalStatus defines the possible states of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalCompleted WithdrawalStatus = "completed"
	WithdrawalRejected  WithdrawalStatus = "rejected"
)

// DepositStatus defines the possible states of a wallet top-up.
type DepositStatus string

const (
	DepositPending  DepositStatus = "pending"
	DepositApproved DepositStatus = "approved"
)

// Listing represents an item offered for sale. IsSold flips exactly once,
// at successful reservation, and never flips back.
type Listing struct {
	Id         string    `dynamodbav:"id"`
	SellerId   string    `dynamodbav:"seller_id"`
	Title      string    `dynamodbav:"title"`
	Price      int64     `dynamodbav:"price"`
	IsPromoted bool      `dynamodbav:"is_promoted"`
	IsActive   bool      `dynamodbav:"is_active"`
	IsSold     bool      `dynamodbav:"is_sold"`
	CreatedAt  time.Time `dynamodbav:"created_at"`
	UpdatedAt  time.Time `dynamodbav:"updated_at"`
}

// Transaction represents a single purchase from reservation to settlement.
// Amounts are integer cents; Fee and NetAmount are frozen at creation so a
// later fee-schedule change can never alter an in-flight sale.
// Transactions are never deleted: they are the audit trail of the money.
type Transaction struct {
	Id              string            `dynamodbav:"id"`
	ListingId       string            `dynamodbav:"listing_id"`
	BuyerId         string            `dynamodbav:"buyer_id"`
	SellerId        string            `dynamodbav:"seller_id"`
	Amount          int64             `dynamodbav:"amount"`
	Fee             int64             `dynamodbav:"fee"`
	NetAmount       int64             `dynamodbav:"net_amount"`
	PaymentMethod   string            `dynamodbav:"payment_method"`
	PaymentRef      string            `dynamodbav:"payment_ref"`
	Status          TransactionStatus `dynamodbav:"status"`
	BuyerConfirmed  bool              `dynamodbav:"buyer_confirmed"`
	SellerConfirmed bool              `dynamodbav:"seller_confirmed"`
	BuyerEvidence   []string          `dynamodbav:"buyer_evidence,omitempty"`
	SellerEvidence  []string          `dynamodbav:"seller_evidence,omitempty"`
	CompletedAt     *time.Time        `dynamodbav:"completed_at,omitempty"`
	CreatedAt       time.Time         `dynamodbav:"created_at"`
	UpdatedAt       time.Time         `dynamodbav:"updated_at"`
}

// Party reports whether the user is the buyer or the seller of the transaction.
func (t *Transaction) Party(userID string) bool {
	return t.BuyerId == userID || t.SellerId == userID
}

// Wallet represents a user's account record. Balance only ever changes through
// server-side relative adjustments inside the same storage transaction as the
// status change that justifies them.
type Wallet struct {
	UserId    string    `json:"user_id" dynamodbav:"user_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	PayoutKey string    `json:"payout_key,omitempty" dynamodbav:"payout_key,omitempty"`
	IsAdmin   bool      `json:"is_admin" dynamodbav:"is_admin"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Dispute represents a buyer's challenge of a transaction. Immutable once
// resolved.
type Dispute struct {
	Id            string            `dynamodbav:"id"`
	TransactionId string            `dynamodbav:"transaction_id"`
	ReporterId    string            `dynamodbav:"reporter_id"`
	Reason        string            `dynamodbav:"reason"`
	Evidence      []string          `dynamodbav:"evidence,omitempty"`
	Status        DisputeStatus     `dynamodbav:"status"`
	Resolution    DisputeResolution `dynamodbav:"resolution,omitempty"`
	ResolvedBy    string            `dynamodbav:"resolved_by,omitempty"`
	ResolvedAt    *time.Time        `dynamodbav:"resolved_at,omitempty"`
	CreatedAt     time.Time         `dynamodbav:"created_at"`
}

// Withdrawal represents a payout request. The wallet is debited at request
// time (pessimistic hold); rejection refunds it, approval only flips status.
type Withdrawal struct {
	Id          string           `dynamodbav:"id"`
	UserId      string           `dynamodbav:"user_id"`
	Amount      int64            `dynamodbav:"amount"`
	PayoutKey   string           `dynamodbav:"payout_key"`
	Status      WithdrawalStatus `dynamodbav:"status"`
	ProcessedAt *time.Time       `dynamodbav:"processed_at,omitempty"`
	CreatedAt   time.Time        `dynamodbav:"created_at"`
}

// Deposit represents a wallet top-up. The wallet is credited only when the
// gateway confirms the external payment.
type Deposit struct {
	Id         string        `dynamodbav:"id"`
	UserId     string        `dynamodbav:"user_id"`
	Amount     int64         `dynamodbav:"amount"`
	PaymentRef string        `dynamodbav:"payment_ref"`
	Status     DepositStatus `dynamodbav:"status"`
	CreatedAt  time.Time     `dynamodbav:"created_at"`
	UpdatedAt  time.Time     `dynamodbav:"updated_at"`
}

// LedgerEntry represents a single entry in the double-entry ledger. Every
// wallet credit or debit writes a pair of these in the same storage
// transaction.
type LedgerEntry struct {
	EntryID       string    `dynamodbav:"entry_id"`
	TransactionID string    `dynamodbav:"transaction_id"`
	AccountID     string    `dynamodbav:"account_id"`
	Debit         int64     `dynamodbav:"debit,omitempty"`
	Credit        int64     `dynamodbav:"credit,omitempty"`
	Description   string    `dynamodbav:"description"`
	Timestamp     time.Time `dynamodbav:"timestamp"`
	GSI1PK        string    `dynamodbav:"gsi1pk"`
}

// EscrowAccountID is the ledger account representing platform-held funds
// between payment and release. ExternalAccountID is the counter-account for
// money entering or leaving the platform through the payment gateway.
const (
	EscrowAccountID   = "ESCROW"
	ExternalAccountID = "EXTERNAL"
)
