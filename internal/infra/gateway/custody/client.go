package custody

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	domain "github.com/kislikjeka/custodygate/internal/platform/custody"
	apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"
	"github.com/kislikjeka/custodygate/pkg/logger"
)

const (
	requestTimeout = 30 * time.Second
	// maxPages bounds pagination so a misbehaving upstream cannot loop forever
	maxPages = 1000
)

// Client is an HTTP client for the custody REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *logger.Logger
}

// NewClient creates a new custody API client.
// httpClient may be nil, in which case an unauthenticated client is used.
func NewClient(baseURL string, httpClient *http.Client, requestsPerSecond int, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		logger:     log.WithField("component", "custody"),
	}
}

// NewHTTPClient returns an HTTP client that authenticates with OAuth2 client credentials
func NewHTTPClient(ctx context.Context, tokenURL, clientID, clientSecret string) *http.Client {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	client := cfg.Client(ctx)
	client.Timeout = requestTimeout
	return client
}

// SetBaseURL overrides the base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// doRequest performs a paced GET request and maps upstream failures to application errors
func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID(ctx))

	c.logger.Debug("API request", "method", http.MethodGet, "url", reqURL)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("custody request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		c.logger.WithDuration(time.Since(start)).Debug("API response", "status_code", resp.StatusCode)
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.Warn("rate limited by custody API", "path", path)
		return nil, apperrors.Upstream("custody rate limit exceeded", &RateLimitError{
			RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
			Message:    "custody API rate limit exceeded",
		})
	default:
		c.logger.Error("API error", "status_code", resp.StatusCode, "path", path)
		return nil, apperrors.Upstream(
			fmt.Sprintf("custody API error: status %d", resp.StatusCode),
			errors.New(string(body)),
		)
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	body, err := c.doRequest(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Upstream("failed to decode custody response", err)
	}
	return nil
}

// getAll follows nextPageToken until the collection is exhausted
func getAll[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	if params == nil {
		params = url.Values{}
	}

	var all []T
	for i := 0; i < maxPages; i++ {
		var page Page[T]
		if err := c.get(ctx, path, params, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Items...)

		if page.NextPageToken == "" {
			return all, nil
		}
		params.Set("pageToken", page.NextPageToken)
	}

	return nil, apperrors.Upstream(fmt.Sprintf("custody pagination exceeded %d pages", maxPages), nil)
}

// ListAccounts fetches all accounts of a domain
func (c *Client) ListAccounts(ctx context.Context, domainID string) ([]AccountItem, error) {
	return getAll[AccountItem](ctx, c, fmt.Sprintf("/v1/domains/%s/accounts", url.PathEscape(domainID)), nil)
}

// GetTransaction fetches one transaction
func (c *Client) GetTransaction(ctx context.Context, domainID, transactionID string) (*TransactionResponse, error) {
	var tx TransactionResponse
	path := fmt.Sprintf("/v1/domains/%s/transactions/%s", url.PathEscape(domainID), url.PathEscape(transactionID))
	if err := c.get(ctx, path, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListTransfers fetches all transfers matching the filter. Empty filter values are omitted.
func (c *Client) ListTransfers(ctx context.Context, domainID string, filter domain.TransferFilter) ([]TransferResponse, error) {
	params := url.Values{}
	if filter.AccountID != "" {
		params.Set("accountId", filter.AccountID)
	}
	if filter.TickerID != "" {
		params.Set("tickerId", filter.TickerID)
	}
	if filter.TransactionID != "" {
		params.Set("transactionId", filter.TransactionID)
	}
	return getAll[TransferResponse](ctx, c, fmt.Sprintf("/v1/domains/%s/transfers", url.PathEscape(domainID)), params)
}

// ListAddresses fetches all addresses of an account
func (c *Client) ListAddresses(ctx context.Context, domainID, accountID string) ([]AddressResponse, error) {
	path := fmt.Sprintf("/v1/domains/%s/accounts/%s/addresses", url.PathEscape(domainID), url.PathEscape(accountID))
	return getAll[AddressResponse](ctx, c, path, nil)
}

// GetTicker fetches one ticker
func (c *Client) GetTicker(ctx context.Context, tickerID string) (*TickerResponse, error) {
	var ticker TickerResponse
	if err := c.get(ctx, fmt.Sprintf("/v1/tickers/%s", url.PathEscape(tickerID)), nil, &ticker); err != nil {
		return nil, err
	}
	return &ticker, nil
}

// ListBalances fetches an account's balances, optionally restricted to one ticker
func (c *Client) ListBalances(ctx context.Context, accountID, tickerID string) ([]BalanceItem, error) {
	params := url.Values{}
	if tickerID != "" {
		params.Set("tickerId", tickerID)
	}
	return getAll[BalanceItem](ctx, c, fmt.Sprintf("/v1/accounts/%s/balances", url.PathEscape(accountID)), params)
}

// requestID reuses the inbound request id so upstream logs can be correlated
func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(logger.RequestIDKey).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

func retryAfter(header string) time.Duration {
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Minute
}

// RateLimitError represents a rate limit error from the custody API
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
}

// IsRateLimitError checks if an error is (or wraps) a custody rate limit error
func IsRateLimitError(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
