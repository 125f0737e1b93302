package exchange

// ExchangeParams holds the raw inputs of a quote request.
// From and To may be token names or ticker IDs, optionally percent-encoded.
type ExchangeParams struct {
	From   string
	To     string
	Amount string
	Type   string
}

// ExchangeData is a converted amount and unit price between two tokens
type ExchangeData struct {
	Amount    string `json:"amount"`
	UnitPrice string `json:"unitPrice"`
}
