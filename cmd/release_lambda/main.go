package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/tradehub/escrow-settlement/pkg/config"
	"github.com/tradehub/escrow-settlement/pkg/hold"
	"github.com/tradehub/escrow-settlement/pkg/scheduler"
	"github.com/tradehub/escrow-settlement/pkg/storage"
	dydbstore "github.com/tradehub/escrow-settlement/pkg/storage/dynamodb"
)

var store *dydbstore.Store
var releaseScheduler scheduler.Scheduler

func init() {
	// Table names and the queue URL arrive through ESCROW_* environment
	// variables; there is no config file inside the lambda package.
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store = dydbstore.New(dbClient, dydbstore.Tables{
		Listings:     cfg.DynamoDB.ListingsTable,
		Transactions: cfg.DynamoDB.TransactionsTable,
		Wallets:      cfg.DynamoDB.WalletsTable,
		Disputes:     cfg.DynamoDB.DisputesTable,
		Withdrawals:  cfg.DynamoDB.WithdrawalsTable,
		Deposits:     cfg.DynamoDB.DepositsTable,
		Ledger:       cfg.DynamoDB.LedgerTable,
	})
	store.HoldBusinessDays = cfg.Escrow.HoldBusinessDays

	if cfg.Queues.ReleaseQueueURL == "" {
		log.Fatal("ESCROW_QUEUES_RELEASE_QUEUE_URL environment variable not set")
	}
	sqsScheduler := scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.Queues.ReleaseQueueURL)
	sqsScheduler.HoldBusinessDays = cfg.Escrow.HoldBusinessDays
	releaseScheduler = sqsScheduler
}

// HandleRequest processes queued release messages. SQS caps per-message delay
// at 15 minutes, far below a business-day hold, so messages whose hold has not
// elapsed are re-enqueued with another maximal delay instead of being
// processed early.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		var msg scheduler.ReleaseMessage
		if err := json.Unmarshal([]byte(message.Body), &msg); err != nil {
			log.Printf("ERROR: failed to unmarshal release message %s: %v", message.MessageId, err)
			// Retrying a malformed message cannot help; drop it.
			continue
		}

		if !hold.Elapsed(msg.CompletedAt, time.Now(), store.HoldBusinessDays) {
			log.Printf("Hold not elapsed for transaction %s, re-enqueueing", msg.TransactionID)
			if err := releaseScheduler.ScheduleRelease(ctx, msg); err != nil {
				log.Printf("ERROR: failed to re-enqueue transaction %s: %v", msg.TransactionID, err)
				return err
			}
			continue
		}

		tx, err := store.GetTransaction(ctx, msg.TransactionID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				log.Printf("Transaction %s no longer exists, dropping", msg.TransactionID)
				continue
			}
			log.Printf("ERROR: failed to load transaction %s: %v", msg.TransactionID, err)
			return err
		}

		released, err := store.ReleaseTransaction(ctx, tx)
		if err != nil {
			log.Printf("ERROR: failed to release transaction %s: %v", tx.Id, err)
			return err
		}
		if !released {
			// Disputed, refunded or already released. Nothing to do.
			log.Printf("Transaction %s not releasable (status %s), dropping", tx.Id, tx.Status)
			continue
		}

		log.Printf("Released %d cents to seller %s for transaction %s", tx.NetAmount, tx.SellerId, tx.Id)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
