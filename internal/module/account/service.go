package account

import (
	"context"
	"fmt"

	"github.com/kislikjeka/custodygate/internal/platform/asset"
	"github.com/kislikjeka/custodygate/internal/platform/custody"
	apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"
)

// ErrProfileBalanceNotImplemented is returned by GetProfileBalance
var ErrProfileBalanceNotImplemented = apperrors.NotImplemented("profile balance")

// BalanceService defines the interface for valued balance lookups
type BalanceService interface {
	GetBalance(ctx context.Context, accountID, tickerID string) (*asset.BalanceData, error)
}

// Service exposes account profiles and balances
type Service struct {
	accounts custody.AccountRepository
	balances BalanceService
}

// NewService creates a new account service
func NewService(accounts custody.AccountRepository, balances BalanceService) *Service {
	return &Service{
		accounts: accounts,
		balances: balances,
	}
}

// ListProfiles returns one profile per account in the domain.
// Addresses and tickers are not populated.
func (s *Service) ListProfiles(ctx context.Context, domainID string) ([]Profile, error) {
	accounts, err := s.accounts.ListAccounts(ctx, domainID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	profiles := make([]Profile, len(accounts))
	for i, a := range accounts {
		profiles[i] = Profile{
			AccountID: a.ID,
			Alias:     a.Alias,
			Addresses: []string{},
			Tickers:   []string{},
		}
	}
	return profiles, nil
}

// GetBalance returns the valued balance of one ticker held by the account
func (s *Service) GetBalance(ctx context.Context, accountID, tickerID string) (*asset.BalanceData, error) {
	return s.balances.GetBalance(ctx, accountID, tickerID)
}

// GetProfileBalance always fails; per-profile balance assembly has no implementation yet.
func (s *Service) GetProfileBalance(_ context.Context, _ string) ([]asset.BalanceData, error) {
	return nil, ErrProfileBalanceNotImplemented
}
