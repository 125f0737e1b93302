package handler

import (
	"context"
	"net/http"

	"github.com/kislikjeka/custodygate/internal/module/exchange"
)

// ExchangeServiceInterface defines the interface for exchange quotes
type ExchangeServiceInterface interface {
	Exchange(ctx context.Context, params exchange.ExchangeParams) (*exchange.ExchangeData, error)
}

// ExchangeHandler handles exchange quote requests
type ExchangeHandler struct {
	exchangeService ExchangeServiceInterface
}

// NewExchangeHandler creates a new exchange handler
func NewExchangeHandler(exchangeService ExchangeServiceInterface) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// ExchangeRequest holds the query of an exchange quote.
// From and To are decoded once more by the service, so double-encoded names work.
type ExchangeRequest struct {
	From   string `query:"from" validate:"required,max=256"`
	To     string `query:"to" validate:"required,max=256"`
	Amount string `query:"amount" validate:"required,max=64"`
	Type   string `query:"type" validate:"max=32"`
}

// GetExchange handles GET /exchange
func (h *ExchangeHandler) GetExchange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ExchangeRequest{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Amount: q.Get("amount"),
		Type:   q.Get("type"),
	}
	if errs := validateRequest(req); errs != nil {
		respondValidationError(w, errs)
		return
	}

	quote, err := h.exchangeService.Exchange(r.Context(), exchange.ExchangeParams{
		From:   req.From,
		To:     req.To,
		Amount: req.Amount,
		Type:   req.Type,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, quote, http.StatusOK)
}
