package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kislikjeka/custodygate/internal/module/account"
	"github.com/kislikjeka/custodygate/internal/platform/asset"
)

// AccountServiceInterface defines the interface for account operations
type AccountServiceInterface interface {
	ListProfiles(ctx context.Context, domainID string) ([]account.Profile, error)
	GetBalance(ctx context.Context, accountID, tickerID string) (*asset.BalanceData, error)
	GetProfileBalance(ctx context.Context, accountID string) ([]asset.BalanceData, error)
}

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService AccountServiceInterface) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// BalanceRequest holds the inputs of a balance lookup
type BalanceRequest struct {
	AccountID string `param:"accountId" validate:"required,max=128"`
	TickerID  string `query:"tickerId" validate:"required,max=128"`
}

// GetProfiles handles GET /domains/{domainId}/profiles
func (h *AccountHandler) GetProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.accountService.ListProfiles(r.Context(), chi.URLParam(r, "domainId"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, profiles, http.StatusOK)
}

// GetBalance handles GET /accounts/{accountId}/balance
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	req := BalanceRequest{
		AccountID: chi.URLParam(r, "accountId"),
		TickerID:  r.URL.Query().Get("tickerId"),
	}
	if errs := validateRequest(req); errs != nil {
		respondValidationError(w, errs)
		return
	}

	balance, err := h.accountService.GetBalance(r.Context(), req.AccountID, req.TickerID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, balance, http.StatusOK)
}

// GetProfileBalance handles GET /accounts/{accountId}/profile-balance
func (h *AccountHandler) GetProfileBalance(w http.ResponseWriter, r *http.Request) {
	balances, err := h.accountService.GetProfileBalance(r.Context(), chi.URLParam(r, "accountId"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, balances, http.StatusOK)
}
