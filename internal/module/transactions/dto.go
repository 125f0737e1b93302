package transactions

import "github.com/kislikjeka/custodygate/internal/platform/asset"

const (
	// DirectionOutgoing marks transactions issued through an order
	DirectionOutgoing = "Outgoing"
	// DirectionReceive marks every other transaction
	DirectionReceive = "Receive"

	// Unknown stands in for a status or counterparty that could not be determined
	Unknown = "Unknown"
)

// ListParams scopes a transaction listing
type ListParams struct {
	DomainID  string
	AccountID string
	TickerID  string // optional; empty lists all tickers
}

// TransactionData represents a transaction in list view
type TransactionData struct {
	ID             string                `json:"id"`
	Date           string                `json:"date"`
	Amount         string                `json:"amount"` // minor units
	Ticker         asset.Ticker          `json:"ticker"`
	Type           string                `json:"type"` // "Outgoing" or "Receive"
	Status         string                `json:"status"`
	Price          asset.ValueWithChange `json:"price"`
	RelatedAccount string                `json:"relatedAccount"`
}

// AmountWithTicker is a total amount together with the ticker it is denominated in
type AmountWithTicker struct {
	Amount string       `json:"amount"`
	Ticker asset.Ticker `json:"ticker"`
}

// TransferData is a single leg in detail view
type TransferData struct {
	Amount  string `json:"amount"`
	Type    string `json:"type"`
	Address string `json:"address"`
}

// TransactionTransferData represents a transaction in detail view
type TransactionTransferData struct {
	Status    string           `json:"status"`
	Date      string           `json:"date"`
	Total     AmountWithTicker `json:"total"`
	Transfers []TransferData   `json:"transfers"`
}
