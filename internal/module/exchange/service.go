package exchange

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/kislikjeka/custodygate/internal/platform/asset"
	apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"
	"github.com/kislikjeka/custodygate/pkg/logger"
	"github.com/kislikjeka/custodygate/pkg/money"
)

// quoteCurrency is the currency both sides of a quote are priced in
const quoteCurrency = "eur"

// tickerIDPattern matches the 8-4-4-4-12 layout of custody ticker IDs
var tickerIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{8}(-[a-zA-Z0-9]{4}){3}-[a-zA-Z0-9]{12}$`)

// AssetService defines the interface for token lookups needed by quotes
type AssetService interface {
	GetTickerName(ctx context.Context, tickerID string) (string, error)
	GetCoin(ctx context.Context, name, currency string) (*asset.Coin, error)
}

// Service computes exchange quotes between two tokens
type Service struct {
	assets AssetService
	logger *logger.Logger
}

// NewService creates a new exchange service
func NewService(assets AssetService, log *logger.Logger) *Service {
	return &Service{
		assets: assets,
		logger: log.WithField("service", "exchange"),
	}
}

// Exchange converts params.Amount of the From token into the To token.
// The converted amount is amount*fromPrice/toPrice and the unit price is toPrice/fromPrice.
// Both sides are priced at the ask regardless of params.Type.
func (s *Service) Exchange(ctx context.Context, params ExchangeParams) (*ExchangeData, error) {
	fromName, err := s.tokenName(ctx, params.From)
	if err != nil {
		return nil, err
	}
	toName, err := s.tokenName(ctx, params.To)
	if err != nil {
		return nil, err
	}

	fromPrice, err := s.askPrice(ctx, fromName)
	if err != nil {
		return nil, err
	}
	toPrice, err := s.askPrice(ctx, toName)
	if err != nil {
		return nil, err
	}

	amount, err := strconv.ParseFloat(params.Amount, 64)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if toPrice == 0 || fromPrice == 0 {
		return nil, ErrDivisionByZero
	}

	return &ExchangeData{
		Amount:    money.FormatDouble(amount * fromPrice / toPrice),
		UnitPrice: money.FormatDouble(toPrice / fromPrice),
	}, nil
}

// tokenName decodes a token reference and resolves ticker IDs to names.
// A failed name lookup falls back to the identifier itself.
func (s *Service) tokenName(ctx context.Context, raw string) (string, error) {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeValidation, fmt.Sprintf("malformed token %q", raw))
	}

	if !IsTickerID(decoded) {
		return decoded, nil
	}

	name, err := s.assets.GetTickerName(ctx, decoded)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("ticker name lookup failed, using identifier",
			"ticker_id", decoded)
		return decoded, nil
	}
	return name, nil
}

func (s *Service) askPrice(ctx context.Context, name string) (float64, error) {
	coin, err := s.assets.GetCoin(ctx, name, quoteCurrency)
	if err != nil {
		return 0, err
	}
	return coin.AskPrice, nil
}

// IsTickerID reports whether s has the shape of a custody ticker ID
func IsTickerID(s string) bool {
	return tickerIDPattern.MatchString(s)
}
