package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port string
	Env  string

	// Custody API configuration
	CustodyBaseURL           string
	CustodyTokenURL          string
	CustodyClientID          string
	CustodyClientSecret      string
	CustodyRequestsPerSecond int

	// CoinGecko API configuration
	CoinGeckoAPIKey  string
	CoinGeckoBaseURL string // empty means the public API
	CoinsConfigPath  string

	// Quote currency for ticker valuations
	TickerQuoteCurrency string

	// Inbound authentication
	AuthEnabled bool
	JWTSecret   string

	// HTTP surface
	AllowedOrigins []string
	RateLimitRPS   int
	RateLimitBurst int
}

// Load loads configuration from an optional .env file and environment variables
func Load() (*Config, error) {
	// Variables already present in the environment win over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Port:                     getEnv("PORT", "8080"),
		Env:                      getEnv("ENV", "development"),
		CustodyBaseURL:           getEnv("CUSTODY_BASE_URL", ""),
		CustodyTokenURL:          getEnv("CUSTODY_TOKEN_URL", ""),
		CustodyClientID:          getEnv("CUSTODY_CLIENT_ID", ""),
		CustodyClientSecret:      getEnv("CUSTODY_CLIENT_SECRET", ""),
		CustodyRequestsPerSecond: getEnvAsInt("CUSTODY_REQUESTS_PER_SECOND", 10),
		CoinGeckoAPIKey:          getEnv("COINGECKO_API_KEY", ""),
		CoinGeckoBaseURL:         getEnv("COINGECKO_BASE_URL", ""),
		CoinsConfigPath:          getEnv("COINS_CONFIG_PATH", ""),
		TickerQuoteCurrency:      strings.ToLower(getEnv("TICKER_QUOTE_CURRENCY", "eur")),
		AuthEnabled:              getEnvAsBool("AUTH_ENABLED", false),
		JWTSecret:                getEnv("JWT_SECRET", ""),
		AllowedOrigins:           getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		RateLimitRPS:             getEnvAsInt("RATE_LIMIT_RPS", 100),
		RateLimitBurst:           getEnvAsInt("RATE_LIMIT_BURST", 20),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present
func (c *Config) Validate() error {
	if c.CustodyBaseURL == "" {
		return fmt.Errorf("CUSTODY_BASE_URL is required")
	}

	// Client credentials come as a set
	creds := []string{c.CustodyTokenURL, c.CustodyClientID, c.CustodyClientSecret}
	set := 0
	for _, v := range creds {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(creds) {
		return fmt.Errorf("CUSTODY_TOKEN_URL, CUSTODY_CLIENT_ID and CUSTODY_CLIENT_SECRET must be set together")
	}

	if c.CustodyRequestsPerSecond <= 0 {
		return fmt.Errorf("CUSTODY_REQUESTS_PER_SECOND must be positive")
	}

	if c.AuthEnabled {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is set")
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
		}
	}

	// CoinGecko API key is required in production but optional in development
	if c.CoinGeckoAPIKey == "" && c.IsProduction() {
		return fmt.Errorf("COINGECKO_API_KEY is required in production")
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

// HasCustodyCredentials reports whether OAuth2 client credentials are configured
func (c *Config) HasCustodyCredentials() bool {
	return c.CustodyClientID != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as a boolean with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty items
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
