package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kislikjeka/custodygate/internal/module/transactions"
)

// TransactionServiceInterface defines the interface for transaction read operations
type TransactionServiceInterface interface {
	ListTransactions(ctx context.Context, params transactions.ListParams) ([]transactions.TransactionData, error)
	GetTransaction(ctx context.Context, domainID, transactionID string) (*transactions.TransactionTransferData, error)
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// ListTransactionsRequest holds the inputs of a transaction listing
type ListTransactionsRequest struct {
	DomainID  string `param:"domainId" validate:"required,max=128"`
	AccountID string `param:"accountId" validate:"required,max=128"`
	TickerID  string `query:"tickerId" validate:"omitempty,max=128"`
}

// GetTransactions handles GET /domains/{domainId}/accounts/{accountId}/transactions
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	req := ListTransactionsRequest{
		DomainID:  chi.URLParam(r, "domainId"),
		AccountID: chi.URLParam(r, "accountId"),
		TickerID:  r.URL.Query().Get("tickerId"),
	}
	if errs := validateRequest(req); errs != nil {
		respondValidationError(w, errs)
		return
	}

	items, err := h.transactionService.ListTransactions(r.Context(), transactions.ListParams{
		DomainID:  req.DomainID,
		AccountID: req.AccountID,
		TickerID:  req.TickerID,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	if items == nil {
		items = []transactions.TransactionData{}
	}
	respondJSON(w, items, http.StatusOK)
}

// GetTransaction handles GET /domains/{domainId}/transactions/{transactionId}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	domainID := chi.URLParam(r, "domainId")
	transactionID := chi.URLParam(r, "transactionId")

	detail, err := h.transactionService.GetTransaction(r.Context(), domainID, transactionID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, detail, http.StatusOK)
}
