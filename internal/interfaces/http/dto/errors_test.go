package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/aokpower/ari-cart/internal/domain/shared"
	"github.com/aokpower/ari-cart/internal/domain/storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodePartUnavailable, http.StatusNotFound},
		{ErrCodeLookupFailed, http.StatusBadGateway},
		{ErrCodeCartRejected, http.StatusBadGateway},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestErrorCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"parse", &storefront.ParseError{Input: "x"}, ErrCodeInvalidParams},
		{"part unavailable", &storefront.PartUnavailableError{SKU: "ABC"}, ErrCodePartUnavailable},
		{"lookup service", &storefront.LookupServiceError{StatusCode: 503}, ErrCodeLookupFailed},
		{"invalid lookup id", storefront.ErrLookupInvalidID, ErrCodeLookupFailed},
		{"timeout", &shared.TimeoutError{Duration: time.Second}, ErrCodeTimeout},
		{"cart unreachable", fmt.Errorf("%w: dial tcp", storefront.ErrCartUnavailable), ErrCodeCartUnavailable},
		{"cart response", storefront.NewResponseError(http.StatusServiceUnavailable), ErrCodeCartRejected},
		{"cart add", &storefront.CartAddError{StatusCode: 404}, ErrCodeCartRejected},
		{"unhandled status", storefront.ErrUnhandledStatus, ErrCodeCartRejected},
		{"count node", storefront.ErrCartCountNode, ErrCodeCartCount},
		{"anything else", errors.New("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCodeFor(tt.err))
		})
	}
}

func TestNewFailedResponse_Serialization(t *testing.T) {
	resp := NewFailedResponse(map[string]string{"state": "FAILED"}, ErrCodeInvalidParams, "Couldn't parse ARI parameters", "req-1")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, map[string]any{"state": "FAILED"}, decoded["data"])
	assert.Equal(t, map[string]any{
		"code":       ErrCodeInvalidParams,
		"message":    "Couldn't parse ARI parameters",
		"request_id": "req-1",
	}, decoded["error"])
}

func TestNewSuccessResponse_OmitsError(t *testing.T) {
	raw, err := json.Marshal(NewSuccessResponse(CartCountResponse{ItemCount: 2, Text: "2"}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"error"`)
	assert.Contains(t, string(raw), `"item_count":2`)
}
