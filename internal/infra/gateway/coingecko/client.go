package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"
	"github.com/kislikjeka/custodygate/pkg/logger"
)

const (
	defaultBaseURL      = "https://api.coingecko.com/api/v3"
	headerAPIKey        = "x-cg-demo-api-key"
	requestTimeout      = 10 * time.Second
	rateLimitRetryAfter = 60 * time.Second
)

// Client represents a CoinGecko API client
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new CoinGecko API client
func NewClient(apiKey string, log *logger.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: defaultBaseURL,
		logger:  log.WithField("component", "coingecko"),
	}
}

// SetBaseURL overrides the default base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}

// Market is one entry of the /coins/markets response
type Market struct {
	ID             string   `json:"id"`
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	CurrentPrice   *float64 `json:"current_price"`
	PriceChange24h *float64 `json:"price_change_24h"`
}

// GetMarkets fetches current market data for coins priced in vsCurrency
// ids: coingecko IDs (e.g., "bitcoin", "ethereum", "usd-coin")
func (c *Client) GetMarkets(ctx context.Context, vsCurrency string, ids []string) ([]Market, error) {
	if len(ids) == 0 {
		return []Market{}, nil
	}

	params := url.Values{}
	params.Set("vs_currency", vsCurrency)
	params.Set("ids", strings.Join(ids, ","))

	reqURL := fmt.Sprintf("%s/coins/markets?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("API request", "url", reqURL)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("coingecko request failed", err)
	}
	defer resp.Body.Close()

	// Handle rate limiting
	if resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("rate limited by CoinGecko")
		return nil, apperrors.Upstream("coingecko rate limit exceeded", &RateLimitError{
			RetryAfter: rateLimitRetryAfter,
			Message:    "CoinGecko API rate limit exceeded",
		})
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("API error", "status_code", resp.StatusCode)
		return nil, apperrors.Upstream(
			fmt.Sprintf("coingecko API error: status %d", resp.StatusCode),
			errors.New(string(body)),
		)
	}

	var markets []Market
	if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
		return nil, apperrors.Upstream("failed to decode coingecko response", err)
	}

	c.logger.Debug("API response", "count", len(markets), "duration_ms", time.Since(start).Milliseconds())
	return markets, nil
}

// RateLimitError represents a rate limit error from CoinGecko API
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
}

// IsRateLimitError checks if an error is (or wraps) a rate limit error
func IsRateLimitError(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
