package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// CartCookie is the cookie the fake storefront keys carts by
const CartCookie = "cart"

type cartLine struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// FakeStorefront emulates the AJAX cart endpoints /cart.js and /cart/add.js.
// Carts are keyed by the "cart" cookie; a request without one starts a new
// cart and receives the cookie in the response.
type FakeStorefront struct {
	Server *httptest.Server

	mu         sync.Mutex
	carts      map[string]int
	outOfStock map[int64]string
	addStatus  int
	addBody    string
	cartStatus int
	nextCart   int
	adds       []string
}

// NewFakeStorefront starts an empty storefront
func NewFakeStorefront(t *testing.T) *FakeStorefront {
	t.Helper()
	f := &FakeStorefront{
		carts:      map[string]int{},
		outOfStock: map[int64]string{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /cart/add.js", f.add)
	mux.HandleFunc("GET /cart.js", f.cart)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the storefront origin
func (f *FakeStorefront) URL() string {
	return f.Server.URL
}

// SetOutOfStock makes adds of variant answer 422 with description
func (f *FakeStorefront) SetOutOfStock(variant int64, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outOfStock[variant] = description
}

// FailAdds makes every add answer with status and raw body
func (f *FakeStorefront) FailAdds(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addStatus = status
	f.addBody = body
}

// FailCart makes /cart.js answer with status
func (f *FakeStorefront) FailCart(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartStatus = status
}

// ItemCount returns the item count of the cart with token
func (f *FakeStorefront) ItemCount(token string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.carts[token]
}

// Adds returns the raw bodies posted to /cart/add.js
func (f *FakeStorefront) Adds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.adds...)
}

// token returns the caller's cart, starting one if needed. Must hold mu.
func (f *FakeStorefront) token(w http.ResponseWriter, r *http.Request) string {
	if ck, err := r.Cookie(CartCookie); err == nil {
		return ck.Value
	}
	f.nextCart++
	token := "cart-" + strconv.Itoa(f.nextCart)
	http.SetCookie(w, &http.Cookie{Name: CartCookie, Value: token, Path: "/"})
	return token
}

func (f *FakeStorefront) add(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds = append(f.adds, string(body))

	if f.addStatus != 0 {
		w.WriteHeader(f.addStatus)
		_, _ = w.Write([]byte(f.addBody))
		return
	}

	var req struct {
		Items []cartLine `json:"items"`
	}
	if err := json.Unmarshal(body, &req); err != nil || len(req.Items) == 0 {
		writeCartError(w, http.StatusBadRequest, "Parameter Missing or Invalid")
		return
	}
	line := req.Items[0]
	if desc, ok := f.outOfStock[line.ID]; ok {
		writeCartError(w, http.StatusUnprocessableEntity, desc)
		return
	}

	token := f.token(w, r)
	f.carts[token] += line.Quantity
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": []cartLine{line}})
}

func (f *FakeStorefront) cart(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cartStatus != 0 {
		w.WriteHeader(f.cartStatus)
		return
	}
	token := f.token(w, r)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token":      token,
		"item_count": f.carts[token],
		"currency":   "USD",
	})
}

func writeCartError(w http.ResponseWriter, status int, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":      status,
		"message":     "Cart Error",
		"description": description,
	})
}
