package idlookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aokpower/ari-cart/internal/domain/storefront"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{name: "defaults", config: &Config{}},
		{name: "custom base url", config: &Config{BaseURL: "http://localhost:8081", TimeoutSeconds: 3}},
		{name: "relative url", config: &Config{BaseURL: "/check"}, wantErr: ErrConfigInvalidBaseURL},
		{name: "unsupported scheme", config: &Config{BaseURL: "ftp://example.com"}, wantErr: ErrConfigInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, tt.config.BaseURL)
			assert.True(t, tt.config.TimeoutSeconds > 0)
		})
	}
}

func TestNewConfig(t *testing.T) {
	config := NewConfig()
	assert.Equal(t, DefaultBaseURL, config.BaseURL)
	assert.Equal(t, DefaultTimeoutSeconds, config.TimeoutSeconds)
}

// ---------------------------------------------------------------------------
// Client Tests
// ---------------------------------------------------------------------------

func createTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{BaseURL: server.URL, TimeoutSeconds: 5}, nil)
	require.NoError(t, err)
	return client
}

func TestNewClient_InvalidConfig(t *testing.T) {
	client, err := NewClient(&Config{BaseURL: "not a url"}, nil)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestClient_IDOfSKU_Found(t *testing.T) {
	var gotPath string
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("42"))
	})

	result, err := client.IDOfSKU(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, storefront.Found("42"), result)
	assert.Equal(t, "/check/ABC123", gotPath)
}

func TestClient_IDOfSKU_EscapesSKU(t *testing.T) {
	var gotPath string
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("7"))
	})

	_, err := client.IDOfSKU(context.Background(), "AB/12 X")
	require.NoError(t, err)
	assert.Equal(t, "/check/AB%2F12%20X", gotPath)
}

func TestClient_IDOfSKU_EmptyBodyIsNotFound(t *testing.T) {
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	result, err := client.IDOfSKU(context.Background(), "MISSING")
	require.NoError(t, err)
	assert.False(t, result.Exists)
	assert.Empty(t, result.Value)
}

func TestClient_IDOfSKU_BodyReturnedVerbatim(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "trailing newline", body: "42\n"},
		{name: "whitespace only", body: "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			result, err := client.IDOfSKU(context.Background(), "ABC")
			require.NoError(t, err)
			assert.Equal(t, storefront.Found(tt.body), result)
		})
	}
}

func TestClient_IDOfSKU_ErrorStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte("99"))
			})

			_, err := client.IDOfSKU(context.Background(), "ABC")
			require.Error(t, err)
			assert.ErrorIs(t, err, storefront.ErrLookupService)
			assert.Equal(t, "There was an internal error in the part id lookup service.", err.Error())

			var svcErr *storefront.LookupServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, status, svcErr.StatusCode)
		})
	}
}

func TestClient_IDOfSKU_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(&Config{BaseURL: server.URL}, nil)
	require.NoError(t, err)
	server.Close()

	_, err = client.IDOfSKU(context.Background(), "ABC")
	require.Error(t, err)
	assert.ErrorIs(t, err, storefront.ErrLookupService)
}

func TestClient_IDOfSKU_SingleRoundTrip(t *testing.T) {
	var calls int32
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.IDOfSKU(context.Background(), "ABC")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
