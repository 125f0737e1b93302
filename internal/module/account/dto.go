package account

// Profile is the public view of one custody account
type Profile struct {
	AccountID string   `json:"accountId"`
	Alias     string   `json:"alias"`
	Addresses []string `json:"addresses"`
	Tickers   []string `json:"tickers"`
}
