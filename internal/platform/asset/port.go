package asset

import "context"

// MarketDataProvider defines the interface for external price providers (e.g., CoinGecko)
type MarketDataProvider interface {
	// GetMarketData fetches the current market view of a token by name in a quote currency
	GetMarketData(ctx context.Context, name, currency string) (*MarketData, error)
}
