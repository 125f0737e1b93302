package asset

import apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"

var (
	ErrMarketDataNotFound = apperrors.NotFound("market data")
	// ErrInvalidDecimals is returned for custody tickers with negative decimals
	ErrInvalidDecimals = apperrors.New(apperrors.ErrCodeUpstream, "invalid ticker decimals")
)
