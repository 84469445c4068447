package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	authservice "github.com/ecosrev/ecosrev-backend/internal/service/auth"
)

func newUserService(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/usuario/login":
			var body struct {
				Email    string `json:"email"`
				Password string `json:"senha"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			if body.Email != "teste@email.com" || body.Password != "Teste@123" {
				http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})

		case r.Method == http.MethodGet && r.URL.Path == "/usuario/me":
			if r.Header.Get("access-token") != "tok-1" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"_id": "u1", "nome": "Usuária Teste", "email": "teste@email.com", "pontos": 200,
			})

		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
}

func TestLoginResolvesUserID(t *testing.T) {
	server := newUserService(t)
	defer server.Close()

	client := authservice.NewClient(server.URL)
	creds, err := client.Login(context.Background(), "teste@email.com", "Teste@123")
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if creds.AccessToken != "tok-1" || creds.UserID != "u1" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := newUserService(t)
	defer server.Close()

	client := authservice.NewClient(server.URL)
	_, err := client.Login(context.Background(), "teste@email.com", "errada")

	var statusErr *authservice.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", statusErr.Status)
	}
}

func TestMe(t *testing.T) {
	server := newUserService(t)
	defer server.Close()

	client := authservice.NewClient(server.URL)
	user, err := client.Me(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Me err: %v", err)
	}
	if user.ID != "u1" || user.Points != 200 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	store := authservice.NewFileTokenStore(path)

	if creds, err := store.Read(); err != nil || creds != nil {
		t.Fatalf("empty store: creds=%v err=%v", creds, err)
	}

	want := &authservice.Credentials{AccessToken: "tok-1", UserID: "u1"}
	if err := store.Write(want); err != nil {
		t.Fatalf("Write err: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read err: %v", err)
	}
	if got == nil || *got != *want {
		t.Fatalf("Read: got %+v want %+v", got, want)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear err: %v", err)
	}
	if creds, err := store.Read(); err != nil || creds != nil {
		t.Fatalf("after clear: creds=%v err=%v", creds, err)
	}
}
