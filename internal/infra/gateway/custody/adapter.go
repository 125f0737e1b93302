package custody

import (
	"context"
	"fmt"
	"math/big"

	domain "github.com/kislikjeka/custodygate/internal/platform/custody"
	apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"
)

// Adapter adapts the custody client to the lookup ports of the custody package
type Adapter struct {
	client *Client
}

// Compile-time checks that Adapter implements every custody port
var (
	_ domain.AccountRepository     = (*Adapter)(nil)
	_ domain.TransactionRepository = (*Adapter)(nil)
	_ domain.TransferRepository    = (*Adapter)(nil)
	_ domain.AddressRepository     = (*Adapter)(nil)
	_ domain.TickerRepository      = (*Adapter)(nil)
	_ domain.BalanceRepository     = (*Adapter)(nil)
)

// NewAdapter creates a new custody adapter
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// ListAccounts returns the accounts of a domain
func (a *Adapter) ListAccounts(ctx context.Context, domainID string) ([]domain.Account, error) {
	items, err := a.client.ListAccounts(ctx, domainID)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, len(items))
	for i, item := range items {
		accounts[i] = domain.Account{
			ID:     item.Data.ID,
			Alias:  item.Data.Alias,
			Ledger: item.Data.LedgerID,
		}
	}
	return accounts, nil
}

// GetTransaction returns one transaction record
func (a *Adapter) GetTransaction(ctx context.Context, domainID, transactionID string) (*domain.Transaction, error) {
	resp, err := a.client.GetTransaction(ctx, domainID, transactionID)
	if err != nil {
		return nil, err
	}
	return convertTransaction(resp), nil
}

// ListTransfers returns the transfers matching the filter
func (a *Adapter) ListTransfers(ctx context.Context, domainID string, filter domain.TransferFilter) ([]domain.Transfer, error) {
	items, err := a.client.ListTransfers(ctx, domainID, filter)
	if err != nil {
		return nil, err
	}

	transfers := make([]domain.Transfer, 0, len(items))
	for _, item := range items {
		t, err := convertTransfer(item)
		if err != nil {
			return nil, apperrors.Upstream(fmt.Sprintf("malformed transfer %s", item.ID), err)
		}
		transfers = append(transfers, t)
	}
	return transfers, nil
}

// ListAddresses returns the addresses owned by an account
func (a *Adapter) ListAddresses(ctx context.Context, domainID, accountID string) ([]domain.Address, error) {
	items, err := a.client.ListAddresses(ctx, domainID, accountID)
	if err != nil {
		return nil, err
	}

	addresses := make([]domain.Address, len(items))
	for i, item := range items {
		addresses[i] = domain.Address{
			ID:        item.ID,
			AccountID: item.AccountID,
			Address:   item.Address,
		}
	}
	return addresses, nil
}

// GetTicker returns one ticker record
func (a *Adapter) GetTicker(ctx context.Context, tickerID string) (*domain.Ticker, error) {
	resp, err := a.client.GetTicker(ctx, tickerID)
	if err != nil {
		return nil, err
	}
	return &domain.Ticker{
		ID:       resp.Data.ID,
		Name:     resp.Data.Name,
		Symbol:   resp.Data.Symbol,
		Kind:     resp.Data.Kind,
		Decimals: resp.Data.Decimals,
	}, nil
}

// GetBalance returns the account's balance of one ticker.
// An account without an entry for the ticker holds zero.
func (a *Adapter) GetBalance(ctx context.Context, accountID, tickerID string) (*domain.Balance, error) {
	items, err := a.client.ListBalances(ctx, accountID, tickerID)
	if err != nil {
		return nil, err
	}

	balance := &domain.Balance{
		AccountID:   accountID,
		TickerID:    tickerID,
		Total:       new(big.Int),
		Quarantined: new(big.Int),
	}
	for _, item := range items {
		if item.TickerID != tickerID {
			continue
		}
		if !item.TotalAmount.IsNil() {
			balance.Total = item.TotalAmount.ToBigInt()
		}
		if !item.QuarantinedAmount.IsNil() {
			balance.Quarantined = item.QuarantinedAmount.ToBigInt()
		}
		break
	}
	return balance, nil
}

func convertTransaction(resp *TransactionResponse) *domain.Transaction {
	tx := &domain.Transaction{
		ID:           resp.ID,
		RegisteredAt: resp.RegisteredAt,
	}
	if resp.OrderReference != nil {
		tx.OrderReference = &domain.OrderReference{ID: resp.OrderReference.ID}
	}
	if resp.LedgerTransactionData != nil {
		tx.LedgerData = &domain.LedgerData{LedgerStatus: resp.LedgerTransactionData.LedgerStatus}
	}
	if resp.Processing != nil {
		tx.Processing = &domain.Processing{Status: resp.Processing.Status}
	}
	return tx
}

func convertTransfer(item TransferResponse) (domain.Transfer, error) {
	t := domain.Transfer{
		ID:            item.ID,
		TransactionID: item.TransactionID,
		Kind:          item.Kind,
		Value:         item.Value,
		TickerID:      item.TickerID,
		Senders:       make([]domain.TransferParty, 0, len(item.Senders)),
	}

	if item.Recipient != nil {
		recipient, err := convertParty(*item.Recipient)
		if err != nil {
			return domain.Transfer{}, fmt.Errorf("recipient: %w", err)
		}
		t.Recipient = recipient
	}

	for i, s := range item.Senders {
		sender, err := convertParty(s)
		if err != nil {
			return domain.Transfer{}, fmt.Errorf("sender %d: %w", i, err)
		}
		t.Senders = append(t.Senders, sender)
	}
	return t, nil
}

func convertParty(p PartyData) (domain.TransferParty, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.Type == PartyTypeAddress {
		return domain.NewAddressParty(p.Address), nil
	}
	party := domain.NewAccountParty(p.AccountID)
	if p.AddressDetails != nil {
		party.WithAddress(p.AddressDetails.Address)
	}
	return party, nil
}
