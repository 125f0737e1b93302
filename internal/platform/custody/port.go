package custody

import "context"

// AccountRepository lists custody accounts
type AccountRepository interface {
	// ListAccounts retrieves all accounts of a domain
	ListAccounts(ctx context.Context, domainID string) ([]Account, error)
}

// TransactionRepository looks up custody transactions
type TransactionRepository interface {
	// GetTransaction retrieves a transaction by ID; fails with ErrNotFound if absent
	GetTransaction(ctx context.Context, domainID, transactionID string) (*Transaction, error)
}

// TransferRepository lists transfer legs
type TransferRepository interface {
	// ListTransfers retrieves all transfers of a domain matching the filter
	ListTransfers(ctx context.Context, domainID string, filter TransferFilter) ([]Transfer, error)
}

// AddressRepository lists the addresses of an account
type AddressRepository interface {
	// ListAddresses retrieves zero or more addresses for an account
	ListAddresses(ctx context.Context, domainID, accountID string) ([]Address, error)
}

// TickerRepository looks up tickers registered in custody
type TickerRepository interface {
	// GetTicker retrieves a ticker by ID; fails with ErrNotFound if absent
	GetTicker(ctx context.Context, tickerID string) (*Ticker, error)
}

// BalanceRepository looks up account balances
type BalanceRepository interface {
	// GetBalance retrieves the balance of one ticker held by an account
	GetBalance(ctx context.Context, accountID, tickerID string) (*Balance, error)
}
