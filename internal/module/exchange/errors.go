package exchange

import apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"

var (
	ErrInvalidAmount  = apperrors.Validation("couldn't parse input data")
	ErrDivisionByZero = apperrors.DivisionByZero("division by zero")
)
