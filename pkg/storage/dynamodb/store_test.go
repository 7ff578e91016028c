package dynamodb

import (
	"time"

	"github.com/tradehub/escrow-settlement/pkg/storage/dynamodb/mocks"
)

// testClock is a Monday, so a three-business-day hold has no weekend in its
// lookback window unless a test sets completed_at earlier.
var testClock = func() time.Time {
	return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
}

func newTestStore(client *mocks.DynamoDBAPI) *Store {
	return &Store{
		Client: client,
		Tables: Tables{
			Listings:     "listings",
			Transactions: "transactions",
			Wallets:      "wallets",
			Disputes:     "disputes",
			Withdrawals:  "withdrawals",
			Deposits:     "deposits",
			Ledger:       "ledger",
		},
		Clock:            testClock,
		HoldBusinessDays: defaultHoldBusinessDays,
	}
}
