// Package auth is a thin client for the remote EcosRev user service:
// registration, login and profile reads/updates. The backend issues an
// access token on login that every other call carries in the access-token
// header.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StatusError carries the remote status so handlers can map it back without
// string matching.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("user service: status %d: %s", e.Status, e.Message)
}

// User is the profile shape returned by /usuario/me.
type User struct {
	ID                 string `json:"_id"`
	Name               string `json:"nome"`
	Email              string `json:"email"`
	Points             int    `json:"pontos"`
	ResetPasswordToken string `json:"resetPasswordToken,omitempty"`
}

// Credentials is what login produces: the token plus the resolved user id.
type Credentials struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"userId"`
}

// Client talks to the remote user service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a user-service client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Register creates an account via POST /usuario.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"nome": name, "email": email, "senha": password}
	return c.doJSON(ctx, http.MethodPost, "/usuario", "", body, nil)
}

// Login exchanges email and password for an access token, then resolves the
// user id via /usuario/me so the QR flow can write history records.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	body := map[string]string{"email": email, "senha": password}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/usuario/login", "", body, &out); err != nil {
		return Credentials{}, err
	}
	if out.AccessToken == "" {
		return Credentials{}, &StatusError{Status: http.StatusBadGateway, Message: "login response missing access token"}
	}

	user, err := c.Me(ctx, out.AccessToken)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{AccessToken: out.AccessToken, UserID: user.ID}, nil
}

// Me fetches the authenticated profile via GET /usuario/me.
func (c *Client) Me(ctx context.Context, token string) (User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/usuario/me", token, nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateMe writes profile fields via PUT /usuario/me.
func (c *Client) UpdateMe(ctx context.Context, token string, fields map[string]any) error {
	return c.doJSON(ctx, http.MethodPut, "/usuario/me", token, fields, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("access-token", token)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("user service %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return &StatusError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode user service response: %w", err)
		}
	}
	return nil
}
