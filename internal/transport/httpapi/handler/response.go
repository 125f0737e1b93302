package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/kislikjeka/custodygate/internal/shared/errors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details []ValidationError `json:"details,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// respondAppError maps an error to its HTTP status.
// Errors that carry no AppError are reported as internal without leaking details.
func respondAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		respondJSON(w, ErrorResponse{
			Error: "internal server error",
			Code:  apperrors.ErrCodeInternal,
		}, http.StatusInternalServerError)
		return
	}

	message := appErr.Message
	if appErr.Code == apperrors.ErrCodeInternal {
		message = "internal server error"
	}
	respondJSON(w, ErrorResponse{Error: message, Code: appErr.Code}, statusForCode(appErr.Code))
}

func statusForCode(code string) int {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeEmptyResult:
		return http.StatusNotFound
	case apperrors.ErrCodeDivisionByZero:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeNotImplemented:
		return http.StatusNotImplemented
	case apperrors.ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
