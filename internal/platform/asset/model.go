package asset

import "github.com/kislikjeka/custodygate/internal/platform/custody"

// ValueWithChange pairs a value with its recent change, both in the quote currency
type ValueWithChange struct {
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

// Ticker is a custody ticker enriched with its market price
type Ticker struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Symbol   string          `json:"symbol"`
	Decimals int             `json:"decimals"`
	Price    ValueWithChange `json:"price"`
}

// Coin holds the quote-side prices of a token in one currency
type Coin struct {
	Name     string
	Currency string
	AskPrice float64
	BidPrice *float64 // nil when the provider has no bid quote
}

// MarketData is a provider's current view of a token
type MarketData struct {
	ID        string
	Name      string
	Currency  string
	Price     float64
	Change24h float64
	Ask       float64
	Bid       *float64
}

// BalanceData is an account balance valued in the ticker quote currency
type BalanceData struct {
	AccountID     string          `json:"accountId"`
	Ticker        Ticker          `json:"ticker"`
	Amount        string          `json:"amount"`        // minor units
	DisplayAmount string          `json:"displayAmount"` // whole units
	Value         ValueWithChange `json:"value"`
}

func tickerFrom(t *custody.Ticker, md *MarketData) *Ticker {
	return &Ticker{
		ID:       t.ID,
		Name:     t.Name,
		Symbol:   t.Symbol,
		Decimals: t.Decimals,
		Price: ValueWithChange{
			Value:  md.Price,
			Change: md.Change24h,
		},
	}
}
