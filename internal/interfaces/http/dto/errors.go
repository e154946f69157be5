package dto

import "net/http"

// API error codes returned in the response envelope
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	ErrCodeInternal     = "ERR_INTERNAL"
)

// ErrorCodeHTTPStatus maps API error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an API error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainCodeMapping maps domain error codes to API error codes.
// Domain codes not listed here fall through to ERR_INTERNAL.
var DomainCodeMapping = map[string]string{
	// generic
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeConflict,
	"CONCURRENCY_CONFLICT": ErrCodeConflict,
	"INVALID_INPUT":        ErrCodeValidation,
	"INVALID_STATE":        ErrCodeBusinessRule,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"INCONSISTENT_DATA":    ErrCodeInternal,
	"INTERNAL_ERROR":       ErrCodeInternal,

	// field-level validation raised by the domain layer
	"EMPTY_LINES":          ErrCodeValidation,
	"INVALID_LINE":         ErrCodeValidation,
	"INVALID_AMOUNT":       ErrCodeValidation,
	"INVALID_LEAD_TIME":    ErrCodeValidation,
	"INVALID_STATUS":       ErrCodeValidation,
	"INVALID_REQUESTER":    ErrCodeValidation,
	"INVALID_APPROVER":     ErrCodeValidation,
	"INVALID_DENIER":       ErrCodeValidation,
	"INVALID_VENDOR_ID":    ErrCodeValidation,
	"INVALID_REQUEST_ID":   ErrCodeValidation,
	"INVALID_QUOTE_ID":     ErrCodeValidation,
	"INVALID_ORDER_ID":     ErrCodeValidation,
	"INVALID_USERNAME":     ErrCodeValidation,
	"INVALID_PASSWORD":     ErrCodeValidation,
	"INVALID_DISPLAY_NAME": ErrCodeValidation,
	"INVALID_ROLE":         ErrCodeValidation,

	// business rule violations
	"QUOTE_MISMATCH":           ErrCodeBusinessRule,
	"INVALID_LINE_REFERENCE":   ErrCodeBusinessRule,
	"VENDOR_NOT_FOUND":         ErrCodeBusinessRule,
	"FUNDING_SOURCE_NOT_FOUND": ErrCodeBusinessRule,

	// authentication
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"ACCOUNT_DEACTIVATED": ErrCodeForbidden,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its API error code
func NormalizeErrorCode(domainCode string) string {
	if apiCode, ok := DomainCodeMapping[domainCode]; ok {
		return apiCode
	}
	return ErrCodeInternal
}
