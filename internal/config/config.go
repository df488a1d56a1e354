package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port                 int
	DevMode              bool
	DatabasePath         string
	InvestAPIURL         string
	InvestToken          string
	LogLevel             string
	RefreshSchedule      string
	PaymentLookaheadDays int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnvAsInt("PORT", 8090),
		DevMode:      getEnvAsBool("DEV_MODE", false),
		DatabasePath: getEnv("DATABASE_PATH", "./data/tracker.db"),
		InvestAPIURL: getEnv("TINVEST_API_URL", "https://invest-public-api.tinkoff.ru/rest"),
		// "demo" serves canned fixtures so the app works without a real token.
		InvestToken:          getEnv("TINVEST_TOKEN", "demo"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		RefreshSchedule:      getEnv("REFRESH_SCHEDULE", "@every 15m"),
		PaymentLookaheadDays: getEnvAsInt("PAYMENT_LOOKAHEAD_DAYS", 365),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.InvestAPIURL == "" {
		return fmt.Errorf("TINVEST_API_URL is required")
	}
	if c.PaymentLookaheadDays <= 0 {
		return fmt.Errorf("PAYMENT_LOOKAHEAD_DAYS must be positive")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
