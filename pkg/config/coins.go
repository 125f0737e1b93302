package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Coin maps a custody ticker name to its market-data identifier
type Coin struct {
	Name        string `yaml:"name"`
	CoinGeckoID string `yaml:"coingecko_id"`
}

// CoinsConfig holds the explicit ticker name → CoinGecko ID mappings
type CoinsConfig struct {
	Coins []Coin `yaml:"coins"`

	// Lookup map keyed by lower-cased name
	byName map[string]*Coin
}

// LoadCoinsConfig loads coin mappings from a YAML file
func LoadCoinsConfig(path string) (*CoinsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coins config file: %w", err)
	}
	return ParseCoinsConfig(data)
}

// ParseCoinsConfig parses coin mappings from YAML bytes
func ParseCoinsConfig(data []byte) (*CoinsConfig, error) {
	var config CoinsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse coins config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.byName = make(map[string]*Coin, len(config.Coins))
	for i := range config.Coins {
		coin := &config.Coins[i]
		config.byName[strings.ToLower(coin.Name)] = coin
	}

	return &config, nil
}

// Validate validates the coins configuration
func (c *CoinsConfig) Validate() error {
	seen := make(map[string]bool)
	for _, coin := range c.Coins {
		if coin.Name == "" {
			return fmt.Errorf("coin name is required")
		}
		if coin.CoinGeckoID == "" {
			return fmt.Errorf("coingecko_id is required for coin %s", coin.Name)
		}
		key := strings.ToLower(coin.Name)
		if seen[key] {
			return fmt.Errorf("duplicate coin %s", coin.Name)
		}
		seen[key] = true
	}
	return nil
}

// CoinGeckoID returns the market-data ID for a ticker name.
// Unmapped names fall back to a slug: lower case, spaces replaced by hyphens.
func (c *CoinsConfig) CoinGeckoID(name string) string {
	if c != nil {
		if coin, ok := c.byName[strings.ToLower(name)]; ok {
			return coin.CoinGeckoID
		}
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
