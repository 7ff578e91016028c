package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("TOML Over Defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		contents := `
log_level = "debug"

[server]
port = 9090

[payments]
mercadopago_access_token = "token-from-file"

[escrow]
hold_business_days = 5
`
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 5, cfg.Escrow.HoldBusinessDays)
		// Untouched sections keep their defaults.
		assert.Equal(t, "transactions", cfg.DynamoDB.TransactionsTable)
		assert.Equal(t, 30, cfg.Escrow.RateLimitPerMinute)
	})

	t.Run("Env Overrides TOML", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9090\n"), 0o600))

		t.Setenv("ESCROW_SERVER_PORT", "7070")
		t.Setenv("ESCROW_PAYMENTS_MERCADOPAGO_ACCESS_TOKEN", "token-from-env")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "token-from-env", cfg.Payments.MercadoPagoAccessToken)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := Load("/does/not/exist.toml")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Defaults()
		cfg.Payments.MercadoPagoAccessToken = "token"
		return cfg
	}

	t.Run("Valid", func(t *testing.T) {
		cfg := valid()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Collects All Problems", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 0
		cfg.LogLevel = "verbose"
		cfg.DynamoDB.LedgerTable = ""

		err := cfg.Validate()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "port must be 1-65535")
		assert.Contains(t, err.Error(), "log_level")
		assert.Contains(t, err.Error(), "ledger_table")
	})

	t.Run("Missing Gateway Token", func(t *testing.T) {
		cfg := Defaults()
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "mercadopago_access_token")
	})
}
