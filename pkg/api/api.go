// Package api defines the wire-format models exchanged over the HTTP API.
// They are deliberately separate from the domain models so storage concerns
// (DynamoDB attribute names, GSI keys) never leak into responses.
package api

import "time"

// TransactionStatus mirrors the domain lifecycle states on the wire.
type TransactionStatus string

// Transaction is the API representation of a purchase.
type Transaction struct {
	Id              string            `json:"id"`
	ListingId       string            `json:"listing_id"`
	BuyerId         string            `json:"buyer_id"`
	SellerId        string            `json:"seller_id"`
	Amount          int64             `json:"amount"`
	Fee             int64             `json:"fee"`
	NetAmount       int64             `json:"net_amount"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
	Status          TransactionStatus `json:"status"`
	BuyerConfirmed  bool              `json:"buyer_confirmed"`
	SellerConfirmed bool              `json:"seller_confirmed"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewOrder is the request body for purchasing a listing.
type NewOrder struct {
	ListingId     string `json:"listing_id"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// CheckoutResponse returns the created transaction together with the payment
// gateway redirect.
type CheckoutResponse struct {
	Transaction *Transaction `json:"transaction"`
	PaymentId   string       `json:"payment_id"`
	RedirectUrl string       `json:"redirect_url"`
}

// ConfirmRequest is the request body for confirming delivery.
type ConfirmRequest struct {
	Evidence []string `json:"evidence,omitempty"`
}

// Listing is the API representation of an item for sale.
type Listing struct {
	Id         string    `json:"id"`
	SellerId   string    `json:"seller_id"`
	Title      string    `json:"title"`
	Price      int64     `json:"price"`
	IsPromoted bool      `json:"is_promoted"`
	IsActive   bool      `json:"is_active"`
	IsSold     bool      `json:"is_sold"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewListing is the request body for creating a listing.
type NewListing struct {
	Title      string `json:"title"`
	Price      int64  `json:"price"`
	IsPromoted bool   `json:"is_promoted"`
}

// Wallet is the API representation of a user's account.
type Wallet struct {
	UserId    string    `json:"user_id"`
	Name      string    `json:"name"`
	Balance   int64     `json:"balance"`
	PayoutKey string    `json:"payout_key,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWallet is the request body for creating a wallet.
type NewWallet struct {
	UserId string `json:"user_id"`
	Name   string `json:"name"`
}

// Dispute is the API representation of a buyer's challenge.
type Dispute struct {
	Id            string     `json:"id"`
	TransactionId string     `json:"transaction_id"`
	ReporterId    string     `json:"reporter_id"`
	Reason        string     `json:"reason"`
	Evidence      []string   `json:"evidence,omitempty"`
	Status        string     `json:"status"`
	Resolution    string     `json:"resolution,omitempty"`
	ResolvedBy    string     `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewDispute is the request body for opening a dispute.
type NewDispute struct {
	TransactionId string   `json:"transaction_id"`
	Reason        string   `json:"reason"`
	Evidence      []string `json:"evidence,omitempty"`
}

// ResolveDisputeRequest is the request body for arbitrating a dispute.
type ResolveDisputeRequest struct {
	Resolution string `json:"resolution"`
}

// Withdrawal is the API representation of a payout request.
type Withdrawal struct {
	Id          string     `json:"id"`
	UserId      string     `json:"user_id"`
	Amount      int64      `json:"amount"`
	PayoutKey   string     `json:"payout_key"`
	Status      string     `json:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewWithdrawal is the request body for requesting a payout.
type NewWithdrawal struct {
	Amount    int64  `json:"amount"`
	PayoutKey string `json:"payout_key"`
}

// Deposit is the API representation of a wallet top-up.
type Deposit struct {
	Id          string `json:"id"`
	UserId      string `json:"user_id"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	PaymentId   string `json:"payment_id"`
	RedirectUrl string `json:"redirect_url,omitempty"`
}

// NewDeposit is the request body for starting a top-up.
type NewDeposit struct {
	Amount int64 `json:"amount"`
}

// LedgerEntry is the API representation of a double-entry ledger row.
type LedgerEntry struct {
	EntryId       string    `json:"entry_id"`
	TransactionId string    `json:"transaction_id"`
	AccountId     string    `json:"account_id"`
	Debit         *int64    `json:"debit,omitempty"`
	Credit        *int64    `json:"credit,omitempty"`
	Description   string    `json:"description"`
	Timestamp     time.Time `json:"timestamp"`
}

// PaymentNotification is the gateway's webhook body. Only payment events
// carry a data ID we act on.
type PaymentNotification struct {
	Type string `json:"type"`
	Data struct {
		Id string `json:"id"`
	} `json:"data"`
}

// ReleaseSummary reports the outcome of an on-demand release sweep.
type ReleaseSummary struct {
	SellerId       string `json:"seller_id"`
	ReleasedAmount int64  `json:"released_amount"`
}
