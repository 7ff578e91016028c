// Package config defines the service configuration and validation helpers.
// Fields load from a TOML file, then ESCROW_* environment variables override
// individual values so secrets stay out of the file.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	DynamoDB DynamoDBConfig `toml:"dynamodb"`
	Queues   QueuesConfig   `toml:"queues"`
	Payments PaymentsConfig `toml:"payments"`
	Redis    RedisConfig    `toml:"redis"`
	Notify   NotifyConfig   `toml:"notify"`
	Escrow   EscrowConfig   `toml:"escrow"`
	LogLevel string         `toml:"log_level"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port int `toml:"port"`
}

// DynamoDBConfig holds the table names the storage layer operates on.
type DynamoDBConfig struct {
	ListingsTable     string `toml:"listings_table"`
	TransactionsTable string `toml:"transactions_table"`
	WalletsTable      string `toml:"wallets_table"`
	DisputesTable     string `toml:"disputes_table"`
	WithdrawalsTable  string `toml:"withdrawals_table"`
	DepositsTable     string `toml:"deposits_table"`
	LedgerTable       string `toml:"ledger_table"`
}

// QueuesConfig holds the SQS queue URLs.
type QueuesConfig struct {
	ReleaseQueueURL string `toml:"release_queue_url"`
	EventsQueueURL  string `toml:"events_queue_url"`
}

// PaymentsConfig holds payment gateway credentials.
type PaymentsConfig struct {
	MercadoPagoAccessToken string `toml:"mercadopago_access_token"`
	WebhookURL             string `toml:"webhook_url"`
}

// RedisConfig holds Redis connection parameters for rate limiting.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// EscrowConfig holds the settlement engine's tunables.
type EscrowConfig struct {
	// HoldBusinessDays is the business-day hold between two-sided
	// confirmation and fund release.
	HoldBusinessDays int `toml:"hold_business_days"`
	// RateLimitPerMinute caps money-moving requests per actor.
	RateLimitPerMinute int `toml:"rate_limit_per_minute"`
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		DynamoDB: DynamoDBConfig{
			ListingsTable:     "listings",
			TransactionsTable: "transactions",
			WalletsTable:      "wallets",
			DisputesTable:     "disputes",
			WithdrawalsTable:  "withdrawals",
			DepositsTable:     "deposits",
			LedgerTable:       "ledger",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Escrow: EscrowConfig{
			HoldBusinessDays:   3,
			RateLimitPerMinute: 30,
		},
		LogLevel: "info",
	}
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
	}

	tables := map[string]string{
		"listings_table":     c.DynamoDB.ListingsTable,
		"transactions_table": c.DynamoDB.TransactionsTable,
		"wallets_table":      c.DynamoDB.WalletsTable,
		"disputes_table":     c.DynamoDB.DisputesTable,
		"withdrawals_table":  c.DynamoDB.WithdrawalsTable,
		"deposits_table":     c.DynamoDB.DepositsTable,
		"ledger_table":       c.DynamoDB.LedgerTable,
	}
	for name, value := range tables {
		if value == "" {
			errs = append(errs, fmt.Sprintf("dynamodb: %s must not be empty", name))
		}
	}

	if c.Payments.MercadoPagoAccessToken == "" {
		errs = append(errs, "payments: mercadopago_access_token must be set")
	}

	if c.Escrow.HoldBusinessDays < 0 {
		errs = append(errs, "escrow: hold_business_days must be >= 0")
	}
	if c.Escrow.RateLimitPerMinute < 1 {
		errs = append(errs, "escrow: rate_limit_per_minute must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
