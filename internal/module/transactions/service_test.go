package transactions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/custodygate/internal/platform/asset"
	"github.com/kislikjeka/custodygate/internal/platform/custody"
	apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"
)

// =============================================================================
// Mocks
// =============================================================================

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetTransaction(ctx context.Context, domainID, transactionID string) (*custody.Transaction, error) {
	args := m.Called(ctx, domainID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*custody.Transaction), args.Error(1)
}

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) ListTransfers(ctx context.Context, domainID string, filter custody.TransferFilter) ([]custody.Transfer, error) {
	args := m.Called(ctx, domainID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]custody.Transfer), args.Error(1)
}

type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) ListAddresses(ctx context.Context, domainID, accountID string) ([]custody.Address, error) {
	args := m.Called(ctx, domainID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]custody.Address), args.Error(1)
}

type MockTickerService struct {
	mock.Mock
}

func (m *MockTickerService) GetTicker(ctx context.Context, tickerID string) (*asset.Ticker, error) {
	args := m.Called(ctx, tickerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Ticker), args.Error(1)
}

// =============================================================================
// Fixtures
// =============================================================================

const domainID = "domain-1"

type fixture struct {
	svc          *TransactionService
	transactions *MockTransactionRepository
	transfers    *MockTransferRepository
	addresses    *MockAddressRepository
	tickers      *MockTickerService
}

func newFixture() *fixture {
	f := &fixture{
		transactions: new(MockTransactionRepository),
		transfers:    new(MockTransferRepository),
		addresses:    new(MockAddressRepository),
		tickers:      new(MockTickerService),
	}
	f.svc = NewTransactionService(f.transactions, f.transfers, f.addresses, f.tickers)
	return f
}

func strPtr(s string) *string { return &s }

var btcTicker = &asset.Ticker{
	ID:       "btc",
	Name:     "Bitcoin",
	Symbol:   "BTC",
	Decimals: 8,
	Price:    asset.ValueWithChange{Value: 40000, Change: -100},
}

func receivedTx(id, date string) *custody.Transaction {
	return &custody.Transaction{ID: id, RegisteredAt: date}
}

func sentTx(id, date string) *custody.Transaction {
	return &custody.Transaction{ID: id, RegisteredAt: date, OrderReference: &custody.OrderReference{ID: "order-" + id}}
}

func leg(txID, kind, value string) custody.Transfer {
	return custody.Transfer{
		ID:            txID + "-" + kind + "-" + value,
		TransactionID: txID,
		Kind:          kind,
		Value:         value,
		TickerID:      "btc",
		Recipient:     custody.NewAddressParty("bc1-recipient"),
		Senders:       []custody.TransferParty{custody.NewAddressParty("bc1-sender")},
	}
}

func (f *fixture) expectList(accountID, tickerID string, transfers []custody.Transfer) {
	f.transfers.On("ListTransfers", mock.Anything, domainID, custody.TransferFilter{
		AccountID: accountID,
		TickerID:  tickerID,
	}).Return(transfers, nil)
}

// =============================================================================
// ListTransactions
// =============================================================================

func TestListTransactions_OneSummaryPerTransaction(t *testing.T) {
	f := newFixture()
	f.expectList("acc-1", "", []custody.Transfer{
		leg("tx-1", custody.KindTransfer, "100"),
		leg("tx-2", custody.KindTransfer, "5"),
		leg("tx-1", "Fee", "3"),
		leg("tx-1", custody.KindTransfer, "50"),
	})
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-1").Return(receivedTx("tx-1", "2023-01-02T00:00:00Z"), nil)
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-2").Return(receivedTx("tx-2", "2023-01-01T00:00:00Z"), nil)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)

	result, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "tx-1", result[0].ID)
	assert.Equal(t, "150", result[0].Amount, "fee legs are excluded from the total")
	assert.Equal(t, "tx-2", result[1].ID)
	assert.Equal(t, "5", result[1].Amount)
	f.transactions.AssertNumberOfCalls(t, "GetTransaction", 2)
}

func TestListTransactions_SortedByDateDescending(t *testing.T) {
	f := newFixture()
	f.expectList("acc-1", "", []custody.Transfer{
		leg("jan", custody.KindTransfer, "1"),
		leg("mar", custody.KindTransfer, "1"),
		leg("feb", custody.KindTransfer, "1"),
	})
	f.transactions.On("GetTransaction", mock.Anything, domainID, "jan").Return(receivedTx("jan", "2023-01-01T00:00:00Z"), nil)
	f.transactions.On("GetTransaction", mock.Anything, domainID, "mar").Return(receivedTx("mar", "2023-03-01T00:00:00Z"), nil)
	f.transactions.On("GetTransaction", mock.Anything, domainID, "feb").Return(receivedTx("feb", "2023-02-01T00:00:00Z"), nil)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)

	result, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
	require.NoError(t, err)

	ids := make([]string, len(result))
	for i, r := range result {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"mar", "feb", "jan"}, ids)
}

func TestListTransactions_EqualDatesKeepUpstreamOrder(t *testing.T) {
	f := newFixture()
	f.expectList("acc-1", "", []custody.Transfer{
		leg("first", custody.KindTransfer, "1"),
		leg("second", custody.KindTransfer, "1"),
	})
	// Same instant written with different offsets
	f.transactions.On("GetTransaction", mock.Anything, domainID, "first").Return(receivedTx("first", "2023-05-01T12:00:00Z"), nil)
	f.transactions.On("GetTransaction", mock.Anything, domainID, "second").Return(receivedTx("second", "2023-05-01T14:00:00+02:00"), nil)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)

	result, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "first", result[0].ID)
	assert.Equal(t, "second", result[1].ID)
}

func TestListTransactions_DirectionStatusAndPrice(t *testing.T) {
	f := newFixture()
	f.expectList("acc-1", "", []custody.Transfer{
		leg("out", custody.KindTransfer, "250000000"),
		leg("in", custody.KindTransfer, "50000000"),
	})
	out := sentTx("out", "2023-02-01T00:00:00Z")
	out.LedgerData = &custody.LedgerData{LedgerStatus: strPtr("Confirmed")}
	out.Processing = &custody.Processing{Status: strPtr("Completed")}
	in := receivedTx("in", "2023-01-01T00:00:00Z")
	in.Processing = &custody.Processing{Status: strPtr("Pending")}

	f.transactions.On("GetTransaction", mock.Anything, domainID, "out").Return(out, nil)
	f.transactions.On("GetTransaction", mock.Anything, domainID, "in").Return(in, nil)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)

	result, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, DirectionOutgoing, result[0].Type)
	assert.Equal(t, "Confirmed", result[0].Status, "ledger status wins over processing status")
	assert.Equal(t, asset.ValueWithChange{Value: 100000, Change: -250}, result[0].Price)
	assert.Equal(t, *btcTicker, result[0].Ticker)

	assert.Equal(t, DirectionReceive, result[1].Type)
	assert.Equal(t, "Pending", result[1].Status)
	assert.Equal(t, asset.ValueWithChange{Value: 20000, Change: -50}, result[1].Price)
}

func TestListTransactions_RequestedTickerOverridesLegTicker(t *testing.T) {
	f := newFixture()
	transfer := leg("tx-1", custody.KindTransfer, "1")
	transfer.TickerID = "leg-ticker"
	f.expectList("acc-1", "btc", []custody.Transfer{transfer})
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-1").Return(receivedTx("tx-1", "2023-01-01T00:00:00Z"), nil)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)

	result, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1", TickerID: "btc"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	f.tickers.AssertNotCalled(t, "GetTicker", mock.Anything, "leg-ticker")
}

func TestListTransactions_Empty(t *testing.T) {
	f := newFixture()
	f.expectList("acc-1", "", []custody.Transfer{})

	result, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestListTransactions_TransactionLookupFailureFailsAll(t *testing.T) {
	f := newFixture()
	f.expectList("acc-1", "", []custody.Transfer{
		leg("tx-1", custody.KindTransfer, "1"),
		leg("tx-2", custody.KindTransfer, "1"),
	})
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-1").Return(receivedTx("tx-1", "2023-01-01T00:00:00Z"), nil)
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-2").Return(nil, custody.ErrNotFound)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)

	result, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, custody.ErrNotFound)
}

func TestListTransactions_TickerFailurePropagates(t *testing.T) {
	f := newFixture()
	f.expectList("acc-1", "", []custody.Transfer{leg("tx-1", custody.KindTransfer, "1")})
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-1").Return(receivedTx("tx-1", "2023-01-01T00:00:00Z"), nil)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(nil, asset.ErrMarketDataNotFound)

	_, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
	assert.ErrorIs(t, err, asset.ErrMarketDataNotFound)
}

func TestListTransactions_TransferFailurePropagates(t *testing.T) {
	f := newFixture()
	f.transfers.On("ListTransfers", mock.Anything, domainID, mock.Anything).Return(nil, errors.New("upstream down"))

	_, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestListTransactions_InvalidDateFails(t *testing.T) {
	f := newFixture()
	f.expectList("acc-1", "", []custody.Transfer{leg("tx-1", custody.KindTransfer, "1")})
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-1").Return(receivedTx("tx-1", "yesterday"), nil)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)

	_, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

// =============================================================================
// Related account resolution
// =============================================================================

func TestListTransactions_RelatedAccount(t *testing.T) {
	tests := []struct {
		name  string
		tx    *custody.Transaction
		legs  []custody.Transfer
		setup func(f *fixture)
		want  string
	}{
		{
			name: "outgoing resolves the recipient",
			tx:   sentTx("tx-1", "2023-01-01T00:00:00Z"),
			legs: []custody.Transfer{leg("tx-1", custody.KindTransfer, "1")},
			want: "bc1-recipient",
		},
		{
			name: "receive resolves a sender",
			tx:   receivedTx("tx-1", "2023-01-01T00:00:00Z"),
			legs: []custody.Transfer{leg("tx-1", custody.KindTransfer, "1")},
			want: "bc1-sender",
		},
		{
			name: "non-principal legs are ignored",
			tx:   receivedTx("tx-1", "2023-01-01T00:00:00Z"),
			legs: func() []custody.Transfer {
				fee := leg("tx-1", "Fee", "1")
				fee.Senders = []custody.TransferParty{custody.NewAddressParty("fee-payer")}
				return []custody.Transfer{fee, leg("tx-1", custody.KindTransfer, "1")}
			}(),
			want: "bc1-sender",
		},
		{
			name: "embedded account address",
			tx:   receivedTx("tx-1", "2023-01-01T00:00:00Z"),
			legs: func() []custody.Transfer {
				l := leg("tx-1", custody.KindTransfer, "1")
				l.Senders = []custody.TransferParty{custody.NewAccountParty("acc-9").WithAddress("embedded-addr")}
				return []custody.Transfer{l}
			}(),
			want: "embedded-addr",
		},
		{
			name: "account address looked up",
			tx:   sentTx("tx-1", "2023-01-01T00:00:00Z"),
			legs: func() []custody.Transfer {
				l := leg("tx-1", custody.KindTransfer, "1")
				l.Recipient = custody.NewAccountParty("acc-9")
				return []custody.Transfer{l}
			}(),
			setup: func(f *fixture) {
				f.addresses.On("ListAddresses", mock.Anything, domainID, "acc-9").Return([]custody.Address{
					{AccountID: "acc-9", Address: "looked-up-1"},
					{AccountID: "acc-9", Address: "looked-up-2"},
				}, nil)
			},
			want: "looked-up-1",
		},
		{
			name: "skips accounts without addresses",
			tx:   receivedTx("tx-1", "2023-01-01T00:00:00Z"),
			legs: func() []custody.Transfer {
				l := leg("tx-1", custody.KindTransfer, "1")
				l.Senders = []custody.TransferParty{custody.NewAccountParty("empty"), custody.NewAddressParty("second-sender")}
				return []custody.Transfer{l}
			}(),
			setup: func(f *fixture) {
				f.addresses.On("ListAddresses", mock.Anything, domainID, "empty").Return([]custody.Address{}, nil)
			},
			want: "second-sender",
		},
		{
			name: "unresolvable counterparty is unknown",
			tx:   receivedTx("tx-1", "2023-01-01T00:00:00Z"),
			legs: func() []custody.Transfer {
				l := leg("tx-1", custody.KindTransfer, "1")
				l.Senders = []custody.TransferParty{custody.NewAccountParty("empty")}
				return []custody.Transfer{l}
			}(),
			setup: func(f *fixture) {
				f.addresses.On("ListAddresses", mock.Anything, domainID, "empty").Return([]custody.Address{}, nil)
			},
			want: Unknown,
		},
		{
			name: "outgoing without recipient is unknown",
			tx:   sentTx("tx-1", "2023-01-01T00:00:00Z"),
			legs: func() []custody.Transfer {
				l := leg("tx-1", custody.KindTransfer, "1")
				l.Recipient = nil
				return []custody.Transfer{l}
			}(),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.expectList("acc-1", "", tt.legs)
			f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-1").Return(tt.tx, nil)
			f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)
			if tt.setup != nil {
				tt.setup(f)
			}

			result, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
			require.NoError(t, err)
			require.Len(t, result, 1)
			assert.Equal(t, tt.want, result[0].RelatedAccount)
		})
	}
}

func TestListTransactions_AddressLookupFailurePropagates(t *testing.T) {
	f := newFixture()
	l := leg("tx-1", custody.KindTransfer, "1")
	l.Senders = []custody.TransferParty{custody.NewAccountParty("acc-9")}
	f.expectList("acc-1", "", []custody.Transfer{l})
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-1").Return(receivedTx("tx-1", "2023-01-01T00:00:00Z"), nil)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)
	f.addresses.On("ListAddresses", mock.Anything, domainID, "acc-9").Return(nil, errors.New("timeout"))

	_, err := f.svc.ListTransactions(context.Background(), ListParams{DomainID: domainID, AccountID: "acc-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acc-9")
}

// =============================================================================
// GetTransaction
// =============================================================================

func TestGetTransaction_Detail(t *testing.T) {
	f := newFixture()
	tx := sentTx("tx-1", "2023-04-01T10:00:00Z")
	tx.Processing = &custody.Processing{Status: strPtr("Signed")}
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-1").Return(tx, nil)
	f.transfers.On("ListTransfers", mock.Anything, domainID, custody.TransferFilter{TransactionID: "tx-1"}).Return([]custody.Transfer{
		leg("tx-1", custody.KindTransfer, "700"),
		leg("tx-1", "Fee", "12"),
		leg("tx-1", custody.KindTransfer, "not-a-number"),
	}, nil)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)

	detail, err := f.svc.GetTransaction(context.Background(), domainID, "tx-1")
	require.NoError(t, err)

	assert.Equal(t, "Signed", detail.Status)
	assert.Equal(t, "2023-04-01T10:00:00Z", detail.Date)
	assert.Equal(t, "700", detail.Total.Amount)
	assert.Equal(t, *btcTicker, detail.Total.Ticker)
	assert.Equal(t, []TransferData{
		{Amount: "700", Type: custody.KindTransfer, Address: "bc1-recipient"},
		{Amount: "12", Type: "Fee", Address: "bc1-recipient"},
		{Amount: "not-a-number", Type: custody.KindTransfer, Address: "bc1-recipient"},
	}, detail.Transfers)
}

func TestGetTransaction_UnknownStatus(t *testing.T) {
	f := newFixture()
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-1").Return(receivedTx("tx-1", "2023-04-01T10:00:00Z"), nil)
	f.transfers.On("ListTransfers", mock.Anything, domainID, custody.TransferFilter{TransactionID: "tx-1"}).Return([]custody.Transfer{
		leg("tx-1", custody.KindTransfer, "1"),
	}, nil)
	f.tickers.On("GetTicker", mock.Anything, "btc").Return(btcTicker, nil)

	detail, err := f.svc.GetTransaction(context.Background(), domainID, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, Unknown, detail.Status)
}

func TestGetTransaction_NoTransfersFails(t *testing.T) {
	f := newFixture()
	f.transactions.On("GetTransaction", mock.Anything, domainID, "tx-1").Return(receivedTx("tx-1", "2023-04-01T10:00:00Z"), nil)
	f.transfers.On("ListTransfers", mock.Anything, domainID, custody.TransferFilter{TransactionID: "tx-1"}).Return([]custody.Transfer{}, nil)

	detail, err := f.svc.GetTransaction(context.Background(), domainID, "tx-1")
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, ErrNoTransfers)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeEmptyResult))
	f.tickers.AssertNotCalled(t, "GetTicker", mock.Anything, mock.Anything)
}

func TestGetTransaction_NotFound(t *testing.T) {
	f := newFixture()
	f.transactions.On("GetTransaction", mock.Anything, domainID, "missing").Return(nil, custody.ErrNotFound)

	_, err := f.svc.GetTransaction(context.Background(), domainID, "missing")
	assert.ErrorIs(t, err, custody.ErrNotFound)
	f.transfers.AssertNotCalled(t, "ListTransfers", mock.Anything, mock.Anything, mock.Anything)
}

// =============================================================================
// Helpers
// =============================================================================

func TestComputeAmount(t *testing.T) {
	transfers := []custody.Transfer{
		{Kind: custody.KindTransfer, Value: "100"},
		{Kind: custody.KindTransfer, Value: "-30"},
		{Kind: custody.KindTransfer, Value: "1.5"},
		{Kind: custody.KindTransfer, Value: ""},
		{Kind: "Fee", Value: "1000"},
		{Kind: custody.KindTransfer, Value: "99999999999999999999"},
	}
	assert.Equal(t, "100000000000000000069", computeAmount(transfers).String())
	assert.Equal(t, "0", computeAmount(nil).String())
}

func TestTransactionStatus(t *testing.T) {
	assert.Equal(t, Unknown, transactionStatus(&custody.Transaction{}))
	assert.Equal(t, Unknown, transactionStatus(&custody.Transaction{LedgerData: &custody.LedgerData{}}))
	assert.Equal(t, "Pending", transactionStatus(&custody.Transaction{
		LedgerData: &custody.LedgerData{},
		Processing: &custody.Processing{Status: strPtr("Pending")},
	}))
	assert.Equal(t, "Detected", transactionStatus(&custody.Transaction{
		LedgerData: &custody.LedgerData{LedgerStatus: strPtr("Detected")},
		Processing: &custody.Processing{Status: strPtr("Pending")},
	}))
}
