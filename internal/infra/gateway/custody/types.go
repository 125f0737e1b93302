package custody

import (
	"fmt"

	"github.com/kislikjeka/custodygate/pkg/money"
)

// Party types as sent by the custody API
const (
	PartyTypeAddress = "Address"
	PartyTypeAccount = "Account"
)

// Page is one page of a custody collection response
type Page[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// AccountItem wraps an account record
type AccountItem struct {
	Data AccountData `json:"data"`
}

// AccountData is the payload of an account record
type AccountData struct {
	ID       string `json:"id"`
	Alias    string `json:"alias"`
	LedgerID string `json:"ledgerId"`
}

// TransactionResponse is a custody transaction record
type TransactionResponse struct {
	ID                    string                 `json:"id"`
	RegisteredAt          string                 `json:"registeredAt"`
	OrderReference        *OrderReference        `json:"orderReference,omitempty"`
	LedgerTransactionData *LedgerTransactionData `json:"ledgerTransactionData,omitempty"`
	Processing            *ProcessingData        `json:"processing,omitempty"`
}

// OrderReference links a transaction to the order that issued it
type OrderReference struct {
	ID string `json:"id"`
}

// LedgerTransactionData carries the ledger-side state of a transaction
type LedgerTransactionData struct {
	LedgerStatus *string `json:"ledgerStatus,omitempty"`
}

// ProcessingData carries the custody-side processing state of a transaction
type ProcessingData struct {
	Status *string `json:"status,omitempty"`
}

// TransferResponse is one transfer leg
type TransferResponse struct {
	ID            string      `json:"id"`
	TransactionID string      `json:"transactionId"`
	Kind          string      `json:"kind"`
	Value         string      `json:"value"`
	TickerID      string      `json:"tickerId"`
	Recipient     *PartyData  `json:"recipient,omitempty"`
	Senders       []PartyData `json:"senders"`
}

// PartyData is a transfer party discriminated by Type
type PartyData struct {
	Type           string          `json:"type"`
	Address        string          `json:"address,omitempty"`
	AccountID      string          `json:"accountId,omitempty"`
	AddressDetails *AddressDetails `json:"addressDetails,omitempty"`
}

// AddressDetails is the address embedded in an account party
type AddressDetails struct {
	Address string `json:"address"`
}

// AddressResponse is an address owned by an account
type AddressResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	Address   string `json:"address"`
}

// TickerResponse wraps a ticker record
type TickerResponse struct {
	Data TickerData `json:"data"`
}

// TickerData is the payload of a ticker record
type TickerData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Kind     string `json:"kind"`
	Decimals int    `json:"decimals"`
	LedgerID string `json:"ledgerId"`
}

// BalanceItem is an account's holdings of one ticker
type BalanceItem struct {
	TickerID          string       `json:"tickerId"`
	TotalAmount       money.BigInt `json:"totalAmount"`
	QuarantinedAmount money.BigInt `json:"quarantinedAmount"`
}

func (p PartyData) validate() error {
	switch p.Type {
	case PartyTypeAddress:
		if p.Address == "" {
			return fmt.Errorf("address party without address")
		}
	case PartyTypeAccount:
		if p.AccountID == "" {
			return fmt.Errorf("account party without accountId")
		}
	default:
		return fmt.Errorf("unknown party type %q", p.Type)
	}
	return nil
}
