package transactions

import apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"

var (
	// ErrNoTransfers is returned when a transaction has no transfer legs
	ErrNoTransfers = apperrors.EmptyResult("transaction has no transfers")
	// ErrInvalidDate is returned when a registration date is not an ISO-8601 instant
	ErrInvalidDate = apperrors.New(apperrors.ErrCodeUpstream, "invalid transaction date")
)
