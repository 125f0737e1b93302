package custody

// TransferParty is one side of a transfer leg.
// It is either an *AddressParty or an *AccountParty.
type TransferParty interface {
	isTransferParty()
}

// AddressParty is a party known only by its literal address
type AddressParty struct {
	Address string
}

// AccountParty is a party that references a custody account.
// Address is set when upstream embedded the address details;
// otherwise the account's addresses have to be looked up.
type AccountParty struct {
	AccountID string
	Address   *string
}

func (*AddressParty) isTransferParty() {}
func (*AccountParty) isTransferParty() {}

// NewAddressParty creates an address party
func NewAddressParty(address string) *AddressParty {
	return &AddressParty{Address: address}
}

// NewAccountParty creates an account party without embedded address details
func NewAccountParty(accountID string) *AccountParty {
	return &AccountParty{AccountID: accountID}
}

// WithAddress sets the embedded address of an account party
func (p *AccountParty) WithAddress(address string) *AccountParty {
	p.Address = &address
	return p
}
