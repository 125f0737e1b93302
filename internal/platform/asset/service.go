package asset

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/kislikjeka/custodygate/internal/platform/custody"
	"github.com/kislikjeka/custodygate/pkg/money"
)

// Service provides unified access to custody tickers and market pricing
type Service struct {
	tickers       custody.TickerRepository
	balances      custody.BalanceRepository
	market        MarketDataProvider
	quoteCurrency string
}

// NewService creates a new asset service.
// quoteCurrency is the currency ticker prices and balances are valued in.
func NewService(
	tickers custody.TickerRepository,
	balances custody.BalanceRepository,
	market MarketDataProvider,
	quoteCurrency string,
) *Service {
	return &Service{
		tickers:       tickers,
		balances:      balances,
		market:        market,
		quoteCurrency: strings.ToLower(quoteCurrency),
	}
}

// GetTicker retrieves a ticker with its current price and 24h change
func (s *Service) GetTicker(ctx context.Context, tickerID string) (*Ticker, error) {
	t, err := s.tickers.GetTicker(ctx, tickerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticker %s: %w", tickerID, err)
	}
	if t.Decimals < 0 {
		return nil, fmt.Errorf("ticker %s: %w", tickerID, ErrInvalidDecimals)
	}

	md, err := s.market.GetMarketData(ctx, t.Name, s.quoteCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to get market data for %s: %w", t.Name, err)
	}

	return tickerFrom(t, md), nil
}

// GetTickerName resolves a ticker ID to its display name
func (s *Service) GetTickerName(ctx context.Context, tickerID string) (string, error) {
	t, err := s.tickers.GetTicker(ctx, tickerID)
	if err != nil {
		return "", err
	}
	return t.Name, nil
}

// GetCoin retrieves quote prices for a token name in the given currency
func (s *Service) GetCoin(ctx context.Context, name, currency string) (*Coin, error) {
	md, err := s.market.GetMarketData(ctx, name, strings.ToLower(currency))
	if err != nil {
		return nil, fmt.Errorf("failed to get coin %s: %w", name, err)
	}

	return &Coin{
		Name:     name,
		Currency: md.Currency,
		AskPrice: md.Ask,
		BidPrice: md.Bid,
	}, nil
}

// GetBalance retrieves an account balance of one ticker and values it
func (s *Service) GetBalance(ctx context.Context, accountID, tickerID string) (*BalanceData, error) {
	balance, err := s.balances.GetBalance(ctx, accountID, tickerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	ticker, err := s.GetTicker(ctx, tickerID)
	if err != nil {
		return nil, err
	}

	total := balance.Total
	if total == nil {
		total = new(big.Int)
	}

	return &BalanceData{
		AccountID:     accountID,
		Ticker:        *ticker,
		Amount:        total.String(),
		DisplayAmount: money.FromBaseUnits(total, ticker.Decimals),
		Value: ValueWithChange{
			Value:  money.Valuate(total, ticker.Decimals, ticker.Price.Value),
			Change: money.Valuate(total, ticker.Decimals, ticker.Price.Change),
		},
	}, nil
}
