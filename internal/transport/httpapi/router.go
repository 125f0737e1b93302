package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kislikjeka/custodygate/internal/transport/httpapi/handler"
	"github.com/kislikjeka/custodygate/internal/transport/httpapi/middleware"
	"github.com/kislikjeka/custodygate/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	RateLimitRPS       int
	RateLimitBurst     int
	TransactionHandler *handler.TransactionHandler
	AccountHandler     *handler.AccountHandler
	ExchangeHandler    *handler.ExchangeHandler
	// JWTMiddleware guards /api/v1 when set; nil leaves the API open
	JWTMiddleware func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 20
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTMiddleware != nil {
			r.Use(cfg.JWTMiddleware)
		}

		if cfg.AccountHandler != nil {
			r.Get("/domains/{domainId}/profiles", cfg.AccountHandler.GetProfiles)
			r.Get("/accounts/{accountId}/balance", cfg.AccountHandler.GetBalance)
			r.Get("/accounts/{accountId}/profile-balance", cfg.AccountHandler.GetProfileBalance)
		}

		if cfg.TransactionHandler != nil {
			r.Get("/domains/{domainId}/accounts/{accountId}/transactions", cfg.TransactionHandler.GetTransactions)
			r.Get("/domains/{domainId}/transactions/{transactionId}", cfg.TransactionHandler.GetTransaction)
		}

		if cfg.ExchangeHandler != nil {
			r.Get("/exchange", cfg.ExchangeHandler.GetExchange)
		}
	})

	return r
}
