package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/stockbridge/reval/internal/domain"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	LedgerTokenURL     string
	LedgerBaseURL      string
	LedgerClientID     string
	LedgerClientSecret string
	LedgerTenantID     string
	StockAccount       string
	AdjustmentAccount  string

	InventoryBaseURL string
	InventoryAPIKey  string
	Locations        []domain.Location

	PageSize       int
	PageDelay      time.Duration
	RetryMax       int
	RetryBaseDelay time.Duration

	DaemonInterval time.Duration

	WorkbookPath          string
	SheetsSpreadsheetID   string
	GoogleCredentialsJSON string
}

// Load reads configuration from environment variables with sensible defaults.
// Required credentials are validated separately via Validate.
func Load() Config {
	return Config{
		LedgerTokenURL:     envOrDefault("LEDGER_TOKEN_URL", "https://identity.xero.com/connect/token"),
		LedgerBaseURL:      envOrDefault("LEDGER_BASE_URL", "https://api.xero.com"),
		LedgerClientID:     os.Getenv("LEDGER_CLIENT_ID"),
		LedgerClientSecret: os.Getenv("LEDGER_CLIENT_SECRET"),
		LedgerTenantID:     os.Getenv("LEDGER_TENANT_ID"),
		StockAccount:       envOrDefault("LEDGER_STOCK_ACCOUNT", "320"),
		AdjustmentAccount:  envOrDefault("LEDGER_ADJUSTMENT_ACCOUNT", "999"),

		InventoryBaseURL: envOrDefault("INVENTORY_BASE_URL", "https://api.veeqo.com"),
		InventoryAPIKey:  os.Getenv("INVENTORY_API_KEY"),
		Locations:        domain.ParseLocations(os.Getenv("INVENTORY_LOCATIONS")),

		PageSize:       envOrDefaultInt("INVENTORY_PAGE_SIZE", 200),
		PageDelay:      envOrDefaultDuration("INVENTORY_PAGE_DELAY", 300*time.Millisecond),
		RetryMax:       envOrDefaultInt("INVENTORY_RETRY_MAX", 5),
		RetryBaseDelay: envOrDefaultDuration("INVENTORY_RETRY_BASE_DELAY", 2*time.Second),

		DaemonInterval: envOrDefaultDuration("DAEMON_INTERVAL", 24*time.Hour),

		WorkbookPath:          os.Getenv("EXPORT_WORKBOOK_PATH"),
		SheetsSpreadsheetID:   os.Getenv("GOOGLE_SHEETS_ID"),
		GoogleCredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
	}
}

// Validate reports the first missing required credential. Absence of any of
// these is a fatal startup error.
func (c Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"LEDGER_CLIENT_ID", c.LedgerClientID},
		{"LEDGER_CLIENT_SECRET", c.LedgerClientSecret},
		{"INVENTORY_API_KEY", c.InventoryAPIKey},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("required environment variable %s is not set", r.key)
		}
	}
	return nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
