package transactions

import (
	"context"
	"fmt"

	"github.com/kislikjeka/custodygate/internal/platform/custody"
)

// addressResolver turns transfer parties into literal addresses
type addressResolver struct {
	addresses custody.AddressRepository
}

// relatedAccount returns the first counterparty address of the principal legs.
// When the caller sent the transaction the counterparty is the recipient,
// otherwise it is any of the senders. Unresolvable counterparties yield Unknown.
func (r *addressResolver) relatedAccount(ctx context.Context, domainID string, callerIsSender bool, transfers []custody.Transfer) (string, error) {
	var parties []custody.TransferParty
	for _, t := range transfers {
		if !t.IsPrincipal() {
			continue
		}
		if callerIsSender {
			if t.Recipient != nil {
				parties = append(parties, t.Recipient)
			}
		} else {
			parties = append(parties, t.Senders...)
		}
	}

	for _, party := range parties {
		addresses, err := r.resolve(ctx, domainID, party)
		if err != nil {
			return "", err
		}
		if len(addresses) > 0 {
			return addresses[0], nil
		}
	}

	return Unknown, nil
}

// resolve returns the literal addresses behind a party
func (r *addressResolver) resolve(ctx context.Context, domainID string, party custody.TransferParty) ([]string, error) {
	switch p := party.(type) {
	case *custody.AddressParty:
		return []string{p.Address}, nil
	case *custody.AccountParty:
		if p.Address != nil {
			return []string{*p.Address}, nil
		}
		records, err := r.addresses.ListAddresses(ctx, domainID, p.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to list addresses of account %s: %w", p.AccountID, err)
		}
		out := make([]string, 0, len(records))
		for _, rec := range records {
			out = append(out, rec.Address)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported transfer party %T", party)
	}
}
