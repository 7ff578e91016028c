package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies ESCROW_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known ESCROW_* environment variables and
// overwrites the corresponding Config fields when a variable is set.
func applyEnvOverrides(cfg *Config) {
	setInt(&cfg.Server.Port, "ESCROW_SERVER_PORT")

	setStr(&cfg.DynamoDB.ListingsTable, "ESCROW_DYNAMODB_LISTINGS_TABLE")
	setStr(&cfg.DynamoDB.TransactionsTable, "ESCROW_DYNAMODB_TRANSACTIONS_TABLE")
	setStr(&cfg.DynamoDB.WalletsTable, "ESCROW_DYNAMODB_WALLETS_TABLE")
	setStr(&cfg.DynamoDB.DisputesTable, "ESCROW_DYNAMODB_DISPUTES_TABLE")
	setStr(&cfg.DynamoDB.WithdrawalsTable, "ESCROW_DYNAMODB_WITHDRAWALS_TABLE")
	setStr(&cfg.DynamoDB.DepositsTable, "ESCROW_DYNAMODB_DEPOSITS_TABLE")
	setStr(&cfg.DynamoDB.LedgerTable, "ESCROW_DYNAMODB_LEDGER_TABLE")

	setStr(&cfg.Queues.ReleaseQueueURL, "ESCROW_QUEUES_RELEASE_QUEUE_URL")
	setStr(&cfg.Queues.EventsQueueURL, "ESCROW_QUEUES_EVENTS_QUEUE_URL")

	setStr(&cfg.Payments.MercadoPagoAccessToken, "ESCROW_PAYMENTS_MERCADOPAGO_ACCESS_TOKEN")
	setStr(&cfg.Payments.WebhookURL, "ESCROW_PAYMENTS_WEBHOOK_URL")

	setStr(&cfg.Redis.Addr, "ESCROW_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "ESCROW_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "ESCROW_REDIS_DB")

	setStr(&cfg.Notify.TelegramToken, "ESCROW_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "ESCROW_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "ESCROW_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "ESCROW_NOTIFY_EVENTS")

	setInt(&cfg.Escrow.HoldBusinessDays, "ESCROW_HOLD_BUSINESS_DAYS")
	setInt(&cfg.Escrow.RateLimitPerMinute, "ESCROW_RATE_LIMIT_PER_MINUTE")

	setStr(&cfg.LogLevel, "ESCROW_LOG_LEVEL")
}

// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
