package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string // Empty selects the in-memory store
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       slog.Level
	MigrationsPath string

	// Settlement policy
	CommissionRate       decimal.Decimal
	ProtocolRefundAmount decimal.Decimal

	SeedDemoData       bool
	RateLimit          string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string

	// Product analytics; an empty key disables event capture
	PosthogAPIKey   string
	PosthogEndpoint string
}

// SettlementPolicy returns the configured settlement policy.
func (c *Config) SettlementPolicy() domain.SettlementPolicy {
	return domain.SettlementPolicy{
		CommissionRate:       c.CommissionRate,
		ProtocolRefundAmount: c.ProtocolRefundAmount,
	}
}

// UseDatabase reports whether a PostgreSQL store is configured.
func (c *Config) UseDatabase() bool {
	return c.DatabaseURL != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("COMMISSION_RATE", "0.1")
	v.SetDefault("PROTOCOL_REFUND_AMOUNT", "6000")
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		SeedDemoData:   v.GetBool("SEED_DEMO_DATA"),
		RateLimit:      v.GetString("RATE_LIMIT"),

		PosthogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory store.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL '%s': %w", v.GetString("LOG_LEVEL"), err)
	}

	var err error
	if cfg.CommissionRate, err = decimal.NewFromString(v.GetString("COMMISSION_RATE")); err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_RATE '%s': %w", v.GetString("COMMISSION_RATE"), err)
	}
	if cfg.ProtocolRefundAmount, err = decimal.NewFromString(v.GetString("PROTOCOL_REFUND_AMOUNT")); err != nil {
		return nil, fmt.Errorf("invalid PROTOCOL_REFUND_AMOUNT '%s': %w", v.GetString("PROTOCOL_REFUND_AMOUNT"), err)
	}
	if err := cfg.SettlementPolicy().Validate(); err != nil {
		return nil, fmt.Errorf("invalid settlement policy: %w", err)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
