// Package dto defines the wire shapes of the public API: the Ok envelope,
// list envelopes and the error-code to HTTP-status mapping.
package dto

import "net/http"

// Error codes returned by the API
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeUnprocessable    = "UNPROCESSABLE"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeDuplicateHandle  = "DUPLICATE_HANDLE"
	ErrCodeDuplicateAddress = "DUPLICATE_ADDRESS"
	ErrCodeRegistration     = "INVALID_REGISTRATION_CODE"
)

// statusByCode maps domain error codes to HTTP status codes.
// Unknown codes fall through to 422 so failed operations surface the
// message instead of masking it behind a generic 500.
var statusByCode = map[string]int{
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeForbidden:        http.StatusForbidden,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeRegistration:     http.StatusUnauthorized,
	ErrCodeDuplicateHandle:  http.StatusBadRequest,
	ErrCodeDuplicateAddress: http.StatusBadRequest,

	"ALREADY_EXISTS":   http.StatusBadRequest,
	"DUPLICATE_LINK":   http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_EMAIL":    http.StatusBadRequest,
	"INVALID_PASSWORD": http.StatusBadRequest,
	"INVALID_ADDRESS":  http.StatusBadRequest,
	"NO_STORE_CONTEXT": http.StatusUnauthorized,
	"INVALID_STATE":    http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
