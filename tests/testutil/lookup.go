package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeLookup emulates the part id lookup service: GET /check/<sku> answers
// with the variant id, or an empty body when the SKU is unknown.
type FakeLookup struct {
	Server *httptest.Server

	mu     sync.Mutex
	ids    map[string]string
	status int
	calls  []string
}

// NewFakeLookup starts a lookup server knowing ids (SKU to variant id)
func NewFakeLookup(t *testing.T, ids map[string]string) *FakeLookup {
	t.Helper()
	f := &FakeLookup{ids: ids, status: http.StatusOK}
	if f.ids == nil {
		f.ids = map[string]string{}
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the server
func (f *FakeLookup) URL() string {
	return f.Server.URL
}

// FailWith makes every lookup answer with status
func (f *FakeLookup) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Calls returns the SKUs looked up so far
func (f *FakeLookup) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FakeLookup) serve(w http.ResponseWriter, r *http.Request) {
	sku, ok := strings.CutPrefix(r.URL.Path, "/check/")
	if !ok || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sku)
	if f.status != http.StatusOK {
		w.WriteHeader(f.status)
		return
	}
	_, _ = w.Write([]byte(f.ids[sku]))
}
