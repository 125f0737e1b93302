package custody

import apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"

// ErrNotFound is returned when a custody resource does not exist
var ErrNotFound = apperrors.NotFound("custody resource")
