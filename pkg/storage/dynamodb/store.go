// Package dynamodb implements the storage contracts on AWS DynamoDB. Every
// money-moving operation executes as a single TransactWriteItems call whose
// ConditionExpressions re-verify the guarding state inside the same isolation
// boundary as the write, so races degrade to conditional failures instead of
// double-spends.
package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store. It
// exists so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables groups the DynamoDB table names the Store operates on.
type Tables struct {
	Listings     string
	Transactions string
	Wallets      string
	Disputes     string
	Withdrawals  string
	Deposits     string
	Ledger       string
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client DynamoDBAPI
	Tables Tables

	// Clock supplies the current time; overridable in tests.
	Clock func() time.Time

	// HoldBusinessDays is the business-day hold between two-sided
	// confirmation and fund release.
	HoldBusinessDays int
}

// New creates a new Store with the default clock and hold period.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client:           client,
		Tables:           tables,
		Clock:            time.Now,
		HoldBusinessDays: defaultHoldBusinessDays,
	}
}

const defaultHoldBusinessDays = 3

// Secondary index names.
const (
	paymentRefGSI   = "payment_ref-index"
	sellerStatusGSI = "seller_id-status-index"
	ledgerFeedGSI   = "gsi1pk-timestamp-index"
)

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// isConditionalCheckFailed reports whether err is a single-item conditional
// update rejection.
func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// transactCancelledAt reports whether a TransactWriteItems error was caused by
// the ConditionExpression of the item at the given index.
func transactCancelledAt(err error, index int) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	if index >= len(tce.CancellationReasons) {
		return false
	}
	reason := tce.CancellationReasons[index]
	return reason.Code != nil && *reason.Code == "ConditionalCheckFailed"
}
