package dto

import (
	"errors"
	"net/http"

	"github.com/aokpower/ari-cart/internal/domain/shared"
	"github.com/aokpower/ari-cart/internal/domain/storefront"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	// ErrCodeTimeout is used when a step did not finish in time
	ErrCodeTimeout = "ERR_TIMEOUT"
)

// Add-to-cart error codes
const (
	// ErrCodeInvalidParams is used when the ARI parameter string can't be parsed
	ErrCodeInvalidParams = "ERR_INVALID_PARAMS"
	// ErrCodePartUnavailable is used when the SKU has no online-store variant
	ErrCodePartUnavailable = "ERR_PART_UNAVAILABLE"
	// ErrCodeLookupFailed is used when the part id lookup service fails
	ErrCodeLookupFailed = "ERR_LOOKUP_FAILED"
	// ErrCodeCartUnavailable is used when the storefront cart can't be reached
	ErrCodeCartUnavailable = "ERR_CART_UNAVAILABLE"
	// ErrCodeCartRejected is used when the cart answered with an unexpected status
	ErrCodeCartRejected = "ERR_CART_REJECTED"
	// ErrCodeCartCount is used when the cart count couldn't be shown
	ErrCodeCartCount = "ERR_CART_COUNT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeTimeout:         http.StatusGatewayTimeout,

	ErrCodeInvalidParams:   http.StatusBadRequest,
	ErrCodePartUnavailable: http.StatusNotFound,
	ErrCodeLookupFailed:    http.StatusBadGateway,
	ErrCodeCartUnavailable: http.StatusBadGateway,
	ErrCodeCartRejected:    http.StatusBadGateway,
	ErrCodeCartCount:       http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorCodeFor classifies an add-to-cart failure
func ErrorCodeFor(err error) string {
	var (
		unavailable *storefront.PartUnavailableError
		respErr     *storefront.ResponseError
		addErr      *storefront.CartAddError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, storefront.ErrParse):
		return ErrCodeInvalidParams
	case errors.As(err, &unavailable):
		return ErrCodePartUnavailable
	case errors.Is(err, storefront.ErrLookupService), errors.Is(err, storefront.ErrLookupInvalidID):
		return ErrCodeLookupFailed
	case errors.Is(err, shared.ErrTimeout):
		return ErrCodeTimeout
	case errors.Is(err, storefront.ErrCartUnavailable):
		return ErrCodeCartUnavailable
	case errors.As(err, &respErr), errors.As(err, &addErr),
		errors.Is(err, storefront.ErrCartInvalidResponse), errors.Is(err, storefront.ErrUnhandledStatus):
		return ErrCodeCartRejected
	case errors.Is(err, storefront.ErrCartCountNode):
		return ErrCodeCartCount
	default:
		return ErrCodeInternal
	}
}
