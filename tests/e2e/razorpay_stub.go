//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RazorpayStub stands in for the orders endpoint and records what it was asked to create.
type RazorpayStub struct {
	server *httptest.Server

	mu       sync.Mutex
	seq      int
	failNext int
	requests []StubOrderRequest
}

type StubOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

func NewRazorpayStub() *RazorpayStub {
	stub := &RazorpayStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(stub.handle))
	return stub
}

func (s *RazorpayStub) URL() string { return s.server.URL }

func (s *RazorpayStub) Close() { s.server.Close() }

// FailNext makes the next order request answer with status.
func (s *RazorpayStub) FailNext(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = status
}

func (s *RazorpayStub) Requests() []StubOrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StubOrderRequest(nil), s.requests...)
}

func (s *RazorpayStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = 0
	s.requests = nil
}

func (s *RazorpayStub) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/v1/orders" {
		http.NotFound(w, r)
		return
	}
	if _, _, ok := r.BasicAuth(); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req StubOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	status := s.failNext
	s.failNext = 0
	s.seq++
	id := fmt.Sprintf("order_e2e%08d", s.seq)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"stubbed failure"}}`))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":       id,
		"amount":   req.Amount,
		"currency": req.Currency,
		"status":   "created",
	})
}
