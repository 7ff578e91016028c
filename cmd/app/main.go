package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/redis/go-redis/v9"

	"github.com/tradehub/escrow-settlement/pkg/config"
	"github.com/tradehub/escrow-settlement/pkg/events"
	"github.com/tradehub/escrow-settlement/pkg/handlers"
	"github.com/tradehub/escrow-settlement/pkg/payments"
	"github.com/tradehub/escrow-settlement/pkg/ratelimit"
	"github.com/tradehub/escrow-settlement/pkg/scheduler"
	dydbstore "github.com/tradehub/escrow-settlement/pkg/storage/dynamodb"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logger := newLogger(cfg.LogLevel)

	// AWS Session
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, dydbstore.Tables{
		Listings:     cfg.DynamoDB.ListingsTable,
		Transactions: cfg.DynamoDB.TransactionsTable,
		Wallets:      cfg.DynamoDB.WalletsTable,
		Disputes:     cfg.DynamoDB.DisputesTable,
		Withdrawals:  cfg.DynamoDB.WithdrawalsTable,
		Deposits:     cfg.DynamoDB.DepositsTable,
		Ledger:       cfg.DynamoDB.LedgerTable,
	})
	store.HoldBusinessDays = cfg.Escrow.HoldBusinessDays

	// SQS: delayed release scheduling plus the notification event stream.
	sqsClient := sqs.NewFromConfig(awsCfg)
	var releaseScheduler scheduler.Scheduler
	if cfg.Queues.ReleaseQueueURL != "" {
		sqsScheduler := scheduler.NewSQSScheduler(sqsClient, cfg.Queues.ReleaseQueueURL)
		sqsScheduler.HoldBusinessDays = cfg.Escrow.HoldBusinessDays
		releaseScheduler = sqsScheduler
	} else {
		logger.Warn("no release queue configured, relying on on-demand sweeps")
	}

	var publisher events.Publisher = &events.NoOpPublisher{}
	if cfg.Queues.EventsQueueURL != "" {
		publisher = events.NewSQSPublisher(sqsClient, cfg.Queues.EventsQueueURL)
	}

	// Redis-backed per-actor rate limiting.
	var limiter ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.Escrow.RateLimitPerMinute, time.Minute)
	}

	gateway := payments.NewMercadoPagoGateway(cfg.Payments.MercadoPagoAccessToken, cfg.Payments.WebhookURL)

	router := handlers.NewRouter(handlers.Deps{
		Store:     store,
		Gateway:   gateway,
		Scheduler: releaseScheduler,
		Publisher: publisher,
		Limiter:   limiter,
		Logger:    logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting server", slog.String("addr", addr))

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newLogger builds the process-wide structured logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
