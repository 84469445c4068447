package rewards

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	rewardsservice "github.com/ecosrev/ecosrev-backend/internal/service/rewards"
)

type fakeLedger struct {
	token    string
	balance  int
	sets     []int
	history  []rewardsservice.History
}

func (f *fakeLedger) Points(context.Context) (int, error) { return f.balance, nil }

func (f *fakeLedger) SetPoints(_ context.Context, points int) error {
	f.sets = append(f.sets, points)
	f.balance = points
	return nil
}

func (f *fakeLedger) AppendHistory(_ context.Context, record rewardsservice.History) error {
	f.history = append(f.history, record)
	return nil
}

func setupRouter(ledger *fakeLedger) *chi.Mux {
	handler := NewWithFactory(func(token string) rewardsservice.Ledger {
		ledger.token = token
		return ledger
	})
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestScanAwardsPoints(t *testing.T) {
	ledger := &fakeLedger{balance: 100}
	r := setupRouter(ledger)

	body, _ := json.Marshal(map[string]string{
		"userId":  "u1",
		"payload": `{"pontos":50,"hash":"abc"}`,
	})
	req := httptest.NewRequest(http.MethodPost, "/rewards/scan", bytes.NewReader(body))
	req.Header.Set("access-token", "tok-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ledger.token != "tok-1" {
		t.Fatalf("ledger token: got %q", ledger.token)
	}
	if len(ledger.sets) != 1 || ledger.sets[0] != 150 {
		t.Fatalf("expected balance write of 150, got %v", ledger.sets)
	}

	var award rewardsservice.Award
	if err := json.Unmarshal(resp.Body.Bytes(), &award); err != nil {
		t.Fatalf("decode award: %v", err)
	}
	if award.Points != 50 || award.NewBalance != 150 {
		t.Fatalf("unexpected award: %+v", award)
	}
}

func TestScanRequiresToken(t *testing.T) {
	r := setupRouter(&fakeLedger{})

	body := []byte(`{"payload":"{}"}`)
	req := httptest.NewRequest(http.MethodPost, "/rewards/scan", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestScanMalformedPayloadIsBadRequest(t *testing.T) {
	ledger := &fakeLedger{balance: 100}
	r := setupRouter(ledger)

	body, _ := json.Marshal(map[string]string{
		"userId":  "u1",
		"payload": "not a voucher",
	})
	req := httptest.NewRequest(http.MethodPost, "/rewards/scan", bytes.NewReader(body))
	req.Header.Set("access-token", "tok-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if len(ledger.sets) != 0 {
		t.Fatalf("balance touched by malformed payload: %v", ledger.sets)
	}
}

func TestPointsPassthrough(t *testing.T) {
	r := setupRouter(&fakeLedger{balance: 42})

	req := httptest.NewRequest(http.MethodGet, "/rewards/points", nil)
	req.Header.Set("access-token", "tok-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]int
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["pontos"] != 42 {
		t.Fatalf("pontos: got %d want 42", body["pontos"])
	}
}
