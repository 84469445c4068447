package rewards_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	rewardsservice "github.com/ecosrev/ecosrev-backend/internal/service/rewards"
)

func TestClientSendsAccessTokenHeader(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("access-token")
		if r.Method != http.MethodGet || r.URL.Path != "/usuario/pontos" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]int{"pontos": 100})
	}))
	defer server.Close()

	client := rewardsservice.NewClient(server.URL, "tok-123")
	points, err := client.Points(context.Background())
	if err != nil {
		t.Fatalf("Points err: %v", err)
	}
	if points != 100 {
		t.Fatalf("Points: got %d want 100", points)
	}
	if gotToken != "tok-123" {
		t.Fatalf("access-token header: got %q", gotToken)
	}
}

func TestClientSetPointsAndHistory(t *testing.T) {
	type put struct {
		Points int `json:"pontos"`
	}
	var gotPut put
	var gotHistory rewardsservice.History

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/usuario/pontos":
			if err := json.NewDecoder(r.Body).Decode(&gotPut); err != nil {
				t.Fatalf("decode put body: %v", err)
			}
		case r.Method == http.MethodPost && r.URL.Path == "/hist/pontos":
			if err := json.NewDecoder(r.Body).Decode(&gotHistory); err != nil {
				t.Fatalf("decode history body: %v", err)
			}
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := rewardsservice.NewClient(server.URL, "tok")
	ctx := context.Background()

	if err := client.SetPoints(ctx, 150); err != nil {
		t.Fatalf("SetPoints err: %v", err)
	}
	if gotPut.Points != 150 {
		t.Fatalf("PUT body: got %d want 150", gotPut.Points)
	}

	record := rewardsservice.History{UserID: "u1", Points: 50, ID: "abc"}
	if err := client.AppendHistory(ctx, record); err != nil {
		t.Fatalf("AppendHistory err: %v", err)
	}
	if gotHistory != record {
		t.Fatalf("history body: got %+v want %+v", gotHistory, record)
	}
}

func TestClientSurfacesRemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := rewardsservice.NewClient(server.URL, "tok")
	if _, err := client.Points(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
