package storefront

import (
	"errors"
	"fmt"
	"net/http"
)

// The messages below are shown to shoppers verbatim, so they are written as
// sentences rather than in the usual lowercase error style.
var (
	// ErrParse is returned when the host page's parameter blob can't be decoded
	ErrParse = errors.New("Couldn't parse ARI parameters")
	// ErrLookupService is returned when the part id lookup service fails
	ErrLookupService = errors.New("There was an internal error in the part id lookup service.")
	// ErrLookupInvalidID is returned when the lookup service answers with a non-numeric id
	ErrLookupInvalidID = errors.New("The part id lookup service returned an invalid part id.")
	// ErrCartCountNode is returned when the cart-count element is missing
	ErrCartCountNode = errors.New("Couldn't find html node for cart count")
	// ErrCartUnavailable is returned when the storefront cart API can't be reached
	ErrCartUnavailable = errors.New("The online store's cart couldn't be reached.")
	// ErrCartInvalidResponse is returned when the cart API body can't be decoded
	ErrCartInvalidResponse = errors.New("The online store's cart sent a response we couldn't read.")
	// ErrUnhandledStatus is returned when a cart add result has no known status
	ErrUnhandledStatus = errors.New("Unhandled cart return status detected.")
)

// ParseError describes why a parameter blob was rejected. Its message is
// always the ErrParse text; Reason is for diagnostics only.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return ErrParse.Error()
}

// Is reports ErrParse as the matching sentinel
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// LookupServiceError is returned by the lookup client for any non-success
// response or transport failure.
type LookupServiceError struct {
	StatusCode int   // zero when the request never got a response
	Cause      error // transport or read error, if any
}

func (e *LookupServiceError) Error() string {
	return ErrLookupService.Error()
}

// Is reports ErrLookupService as the matching sentinel
func (e *LookupServiceError) Is(target error) bool {
	return target == ErrLookupService
}

func (e *LookupServiceError) Unwrap() error {
	return e.Cause
}

// PartUnavailableError is returned when a SKU has no online-store variant
type PartUnavailableError struct {
	SKU string
}

func (e *PartUnavailableError) Error() string {
	return fmt.Sprintf("This part (%s) isn't available in the online store.", e.SKU)
}

// ResponseError is returned when reading the cart yields a non-2xx status.
// The message is the status text, e.g. "Not Found".
type ResponseError struct {
	StatusCode int
	StatusText string
}

// NewResponseError builds a ResponseError using the canonical status text
func NewResponseError(statusCode int) *ResponseError {
	text := http.StatusText(statusCode)
	if text == "" {
		text = fmt.Sprintf("HTTP %d", statusCode)
	}
	return &ResponseError{StatusCode: statusCode, StatusText: text}
}

func (e *ResponseError) Error() string {
	return e.StatusText
}

// CartAddError is returned when adding to cart fails with a status other than
// 200 or 422. The message is the server-supplied description.
type CartAddError struct {
	StatusCode  int
	Description string
}

func (e *CartAddError) Error() string {
	if e.Description == "" {
		return NewResponseError(e.StatusCode).Error()
	}
	return e.Description
}
