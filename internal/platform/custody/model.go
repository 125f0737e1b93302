package custody

import "math/big"

// KindTransfer is the transfer kind that carries principal value.
// Other kinds (fees, internal ledger movements) never count toward totals.
const KindTransfer = "Transfer"

// Account represents a custody account within a domain
type Account struct {
	ID     string
	Alias  string
	Ledger string
}

// Address represents a literal ledger address owned by an account
type Address struct {
	ID        string
	AccountID string
	Address   string
}

// OrderReference marks a transaction that originated from an outbound order
type OrderReference struct {
	ID string
}

// LedgerData carries the ledger-side view of a transaction
type LedgerData struct {
	LedgerStatus *string
}

// Processing carries the custody-side processing state of a transaction
type Processing struct {
	Status *string
}

// Transaction represents a custody transaction record
type Transaction struct {
	ID             string
	RegisteredAt   string // ISO-8601 instant as returned upstream
	OrderReference *OrderReference
	LedgerData     *LedgerData
	Processing     *Processing
}

// LedgerStatus returns the ledger status, if any
func (t *Transaction) LedgerStatus() (string, bool) {
	if t.LedgerData == nil || t.LedgerData.LedgerStatus == nil {
		return "", false
	}
	return *t.LedgerData.LedgerStatus, true
}

// ProcessingStatus returns the processing status, if any
func (t *Transaction) ProcessingStatus() (string, bool) {
	if t.Processing == nil || t.Processing.Status == nil {
		return "", false
	}
	return *t.Processing.Status, true
}

// HasOrderReference reports whether the transaction was issued through an order
func (t *Transaction) HasOrderReference() bool {
	return t.OrderReference != nil
}

// Transfer represents one leg of a transaction
type Transfer struct {
	ID            string
	TransactionID string
	Kind          string
	Value         string // signed integer amount in minor units, as returned upstream
	TickerID      string
	Recipient     TransferParty // nil when the leg has no recipient
	Senders       []TransferParty
}

// IsPrincipal reports whether the leg moves principal value
func (t *Transfer) IsPrincipal() bool {
	return t.Kind == KindTransfer
}

// TransferFilter narrows a transfer listing. Empty fields are not applied.
type TransferFilter struct {
	AccountID     string
	TickerID      string
	TransactionID string
}

// Ticker represents a tradable asset as registered in custody
type Ticker struct {
	ID       string
	Name     string
	Symbol   string
	Kind     string
	Decimals int
}

// Balance represents an account's holdings of one ticker
type Balance struct {
	AccountID   string
	TickerID    string
	Total       *big.Int
	Quarantined *big.Int
}
