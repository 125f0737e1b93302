package coingecko

import (
	"context"
	"fmt"
	"strings"

	"github.com/kislikjeka/custodygate/internal/platform/asset"
	"github.com/kislikjeka/custodygate/pkg/config"
)

// MarketDataAdapter adapts coingecko.Client to the asset.MarketDataProvider interface
type MarketDataAdapter struct {
	client *Client
	coins  *config.CoinsConfig
}

// NewMarketDataAdapter creates a new adapter. coins may be nil.
func NewMarketDataAdapter(client *Client, coins *config.CoinsConfig) *MarketDataAdapter {
	return &MarketDataAdapter{client: client, coins: coins}
}

// GetMarketData fetches the current price of a token by its display name.
// CoinGecko publishes no order book quotes, so the ask is the current price and there is no bid.
func (a *MarketDataAdapter) GetMarketData(ctx context.Context, name, currency string) (*asset.MarketData, error) {
	id := a.coins.CoinGeckoID(name)
	currency = strings.ToLower(currency)

	markets, err := a.client.GetMarkets(ctx, currency, []string{id})
	if err != nil {
		return nil, err
	}

	for _, m := range markets {
		if m.ID != id {
			continue
		}
		md := &asset.MarketData{
			ID:       m.ID,
			Name:     name,
			Currency: currency,
		}
		if m.CurrentPrice != nil {
			md.Price = *m.CurrentPrice
			md.Ask = *m.CurrentPrice
		}
		if m.PriceChange24h != nil {
			md.Change24h = *m.PriceChange24h
		}
		return md, nil
	}

	return nil, fmt.Errorf("%s (%s): %w", name, id, asset.ErrMarketDataNotFound)
}

// Ensure MarketDataAdapter implements asset.MarketDataProvider
var _ asset.MarketDataProvider = (*MarketDataAdapter)(nil)
