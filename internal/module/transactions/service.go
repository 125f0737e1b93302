package transactions

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/kislikjeka/custodygate/internal/platform/asset"
	"github.com/kislikjeka/custodygate/internal/platform/custody"
	"github.com/kislikjeka/custodygate/pkg/money"
)

// TickerService defines the interface for priced ticker lookups
type TickerService interface {
	GetTicker(ctx context.Context, tickerID string) (*asset.Ticker, error)
}

// TransactionService assembles custody transfers into transaction views
type TransactionService struct {
	transactions custody.TransactionRepository
	transfers    custody.TransferRepository
	tickers      TickerService
	resolver     *addressResolver
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactions custody.TransactionRepository,
	transfers custody.TransferRepository,
	addresses custody.AddressRepository,
	tickers TickerService,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		transfers:    transfers,
		tickers:      tickers,
		resolver:     &addressResolver{addresses: addresses},
	}
}

// ListTransactions returns one summary per transaction touching the account,
// newest first. Any failed lookup fails the whole listing.
func (s *TransactionService) ListTransactions(ctx context.Context, params ListParams) ([]TransactionData, error) {
	transfers, err := s.transfers.ListTransfers(ctx, params.DomainID, custody.TransferFilter{
		AccountID: params.AccountID,
		TickerID:  params.TickerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	// Group legs by transaction, keeping first-seen order
	var order []string
	groups := make(map[string][]custody.Transfer)
	for _, t := range transfers {
		if _, seen := groups[t.TransactionID]; !seen {
			order = append(order, t.TransactionID)
		}
		groups[t.TransactionID] = append(groups[t.TransactionID], t)
	}

	type dated struct {
		data TransactionData
		at   time.Time
	}
	items := make([]dated, 0, len(order))
	for _, id := range order {
		data, err := s.buildTransactionData(ctx, params, id, groups[id])
		if err != nil {
			return nil, err
		}
		at, err := parseInstant(data.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", data.ID, err)
		}
		items = append(items, dated{data: *data, at: at})
	}

	slices.SortStableFunc(items, func(a, b dated) int {
		return b.at.Compare(a.at)
	})

	result := make([]TransactionData, len(items))
	for i, item := range items {
		result[i] = item.data
	}
	return result, nil
}

// GetTransaction returns a single transaction with all of its transfer legs
func (s *TransactionService) GetTransaction(ctx context.Context, domainID, transactionID string) (*TransactionTransferData, error) {
	tx, err := s.transactions.GetTransaction(ctx, domainID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}

	transfers, err := s.transfers.ListTransfers(ctx, domainID, custody.TransferFilter{TransactionID: tx.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	if len(transfers) == 0 {
		return nil, fmt.Errorf("transaction %s: %w", tx.ID, ErrNoTransfers)
	}

	ticker, err := s.tickers.GetTicker(ctx, transfers[0].TickerID)
	if err != nil {
		return nil, err
	}

	// The counterparty is derived from the whole leg set, so every leg shares it
	related, err := s.resolver.relatedAccount(ctx, domainID, tx.HasOrderReference(), transfers)
	if err != nil {
		return nil, err
	}

	legs := make([]TransferData, len(transfers))
	for i, t := range transfers {
		legs[i] = TransferData{
			Amount:  t.Value,
			Type:    t.Kind,
			Address: related,
		}
	}

	return &TransactionTransferData{
		Status: transactionStatus(tx),
		Date:   tx.RegisteredAt,
		Total: AmountWithTicker{
			Amount: computeAmount(transfers).String(),
			Ticker: *ticker,
		},
		Transfers: legs,
	}, nil
}

// buildTransactionData projects one transaction's legs into a list item
func (s *TransactionService) buildTransactionData(ctx context.Context, params ListParams, transactionID string, transfers []custody.Transfer) (*TransactionData, error) {
	tx, err := s.transactions.GetTransaction(ctx, params.DomainID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}

	tickerID := params.TickerID
	if tickerID == "" {
		tickerID = transfers[0].TickerID
	}
	ticker, err := s.tickers.GetTicker(ctx, tickerID)
	if err != nil {
		return nil, err
	}

	amount := computeAmount(transfers)

	related, err := s.resolver.relatedAccount(ctx, params.DomainID, tx.HasOrderReference(), transfers)
	if err != nil {
		return nil, err
	}

	return &TransactionData{
		ID:     tx.ID,
		Date:   tx.RegisteredAt,
		Amount: amount.String(),
		Ticker: *ticker,
		Type:   transactionDirection(tx),
		Status: transactionStatus(tx),
		Price: asset.ValueWithChange{
			Value:  money.Valuate(amount, ticker.Decimals, ticker.Price.Value),
			Change: money.Valuate(amount, ticker.Decimals, ticker.Price.Change),
		},
		RelatedAccount: related,
	}, nil
}

// computeAmount sums the principal legs; values that are not integers count as zero
func computeAmount(transfers []custody.Transfer) *big.Int {
	total := new(big.Int)
	for _, t := range transfers {
		if !t.IsPrincipal() {
			continue
		}
		value, _ := money.ParseMinorUnits(t.Value)
		total.Add(total, value)
	}
	return total
}

// transactionStatus prefers the ledger status over the processing status
func transactionStatus(tx *custody.Transaction) string {
	if status, ok := tx.LedgerStatus(); ok {
		return status
	}
	if status, ok := tx.ProcessingStatus(); ok {
		return status
	}
	return Unknown
}

// transactionDirection treats order-issued transactions as outgoing
func transactionDirection(tx *custody.Transaction) string {
	if tx.HasOrderReference() {
		return DirectionOutgoing
	}
	return DirectionReceive
}

func parseInstant(s string) (time.Time, error) {
	at, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
	}
	return at, nil
}
