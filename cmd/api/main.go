package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kislikjeka/custodygate/internal/infra/gateway/coingecko"
	"github.com/kislikjeka/custodygate/internal/infra/gateway/custody"
	"github.com/kislikjeka/custodygate/internal/module/account"
	"github.com/kislikjeka/custodygate/internal/module/exchange"
	"github.com/kislikjeka/custodygate/internal/module/transactions"
	"github.com/kislikjeka/custodygate/internal/platform/asset"
	"github.com/kislikjeka/custodygate/internal/transport/httpapi"
	"github.com/kislikjeka/custodygate/internal/transport/httpapi/handler"
	"github.com/kislikjeka/custodygate/internal/transport/httpapi/middleware"
	"github.com/kislikjeka/custodygate/pkg/config"
	"github.com/kislikjeka/custodygate/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting custody gateway API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Custody API client, authenticated when client credentials are configured
	var custodyHTTP *http.Client
	if cfg.HasCustodyCredentials() {
		custodyHTTP = custody.NewHTTPClient(ctx, cfg.CustodyTokenURL, cfg.CustodyClientID, cfg.CustodyClientSecret)
		log.Info("Custody API client uses OAuth2 client credentials")
	} else {
		log.Warn("Custody API client credentials not configured, requests are unauthenticated")
	}
	custodyClient := custody.NewClient(cfg.CustodyBaseURL, custodyHTTP, cfg.CustodyRequestsPerSecond, log)
	custodyAdapter := custody.NewAdapter(custodyClient)

	// Market data
	var coins *config.CoinsConfig
	if cfg.CoinsConfigPath != "" {
		coins, err = config.LoadCoinsConfig(cfg.CoinsConfigPath)
		if err != nil {
			log.Error("Failed to load coins config", "path", cfg.CoinsConfigPath, "error", err)
			os.Exit(1)
		}
		log.Info("Coins config loaded", "coins", len(coins.Coins))
	}
	coinGeckoClient := coingecko.NewClient(cfg.CoinGeckoAPIKey, log)
	if cfg.CoinGeckoBaseURL != "" {
		coinGeckoClient.SetBaseURL(cfg.CoinGeckoBaseURL)
	}
	marketData := coingecko.NewMarketDataAdapter(coinGeckoClient, coins)

	// Services
	assetSvc := asset.NewService(custodyAdapter, custodyAdapter, marketData, cfg.TickerQuoteCurrency)
	transactionSvc := transactions.NewTransactionService(custodyAdapter, custodyAdapter, custodyAdapter, assetSvc)
	accountSvc := account.NewService(custodyAdapter, assetSvc)
	exchangeSvc := exchange.NewService(assetSvc, log)

	// Inbound authentication
	var jwtMiddleware func(http.Handler) http.Handler
	if cfg.AuthEnabled {
		jwtMiddleware = middleware.JWT(middleware.NewJWTValidator(cfg.JWTSecret))
	} else {
		log.Warn("Authentication disabled, /api/v1 is open")
	}

	r := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		TransactionHandler: handler.NewTransactionHandler(transactionSvc),
		AccountHandler:     handler.NewAccountHandler(accountSvc),
		ExchangeHandler:    handler.NewExchangeHandler(exchangeSvc),
		JWTMiddleware:      jwtMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // listings fan out into many upstream calls
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
