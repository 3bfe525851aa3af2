package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeInsufficientStock is used when stock is insufficient
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	// ErrCodeHierarchyCycle is used when a category move would form a cycle
	ErrCodeHierarchyCycle = "ERR_HIERARCHY_CYCLE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeValidationFormat: http.StatusBadRequest,
	ErrCodeValidationRange:  http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeHierarchyCycle:    http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":        ErrCodeNotFound,
	"PARENT_NOT_FOUND": ErrCodeNotFound,

	"ALREADY_EXISTS": ErrCodeAlreadyExists,

	"ENTITY_DELETED":        ErrCodeConflict,
	"ALREADY_DELETED":       ErrCodeConflict,
	"NOT_DELETED":           ErrCodeConflict,
	"CATEGORY_HAS_CHILDREN": ErrCodeConflict,
	"CATEGORY_HAS_PRODUCTS": ErrCodeConflict,
	"CONCURRENCY_CONFLICT":  ErrCodeConcurrencyConflict,

	"HIERARCHY_CYCLE":    ErrCodeHierarchyCycle,
	"PARENT_DELETED":     ErrCodeInvalidState,
	"INVALID_STATE":      ErrCodeInvalidState,
	"INVALID_OPERATION":  ErrCodeInvalidState,
	"ALREADY_ACTIVE":     ErrCodeInvalidState,
	"ALREADY_INACTIVE":   ErrCodeInvalidState,
	"INSUFFICIENT_STOCK": ErrCodeInsufficientStock,

	"INVALID_INPUT":      ErrCodeInvalidInput,
	"INVALID_NAME":       ErrCodeValidation,
	"INVALID_SLUG":       ErrCodeValidationFormat,
	"INVALID_SKU":        ErrCodeValidationFormat,
	"INVALID_STATUS":     ErrCodeValidation,
	"INVALID_SALE_PRICE": ErrCodeValidationRange,
	"INVALID_STOCK":      ErrCodeValidationRange,
	"INVALID_RATING":     ErrCodeValidationRange,
	"INVALID_SORT_ORDER": ErrCodeValidationRange,
	"INVALID_ATTRIBUTE":  ErrCodeValidation,
	"INVALID_IMAGE":      ErrCodeValidation,
	"INVALID_CATEGORY":   ErrCodeValidation,
	"INVALID_PARENT":     ErrCodeValidation,
	"CURRENCY_MISMATCH":  ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// Unknown codes are treated as business rule violations.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return ErrCodeBusinessRule
}
