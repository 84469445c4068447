// Package rewards talks to the remote rewards ledger: the user's point
// balance and the point-award history. The ledger authenticates every call
// with the user's token in the access-token header.
package rewards

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

// Ledger is the remote balance/history contract consumed by the QR flow.
type Ledger interface {
	Points(ctx context.Context) (int, error)
	SetPoints(ctx context.Context, points int) error
	AppendHistory(ctx context.Context, record History) error
}

// History is one point-award record.
type History struct {
	UserID string `json:"idUsuario"`
	Points int    `json:"pontos"`
	ID     string `json:"id"`
}

// Client implements Ledger against the EcosRev REST backend. The surface is
// deliberately small: the ledger offers no atomic increment, only absolute
// balance writes.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient builds a ledger client bound to one user token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// Points fetches the current balance via GET /usuario/pontos.
func (c *Client) Points(ctx context.Context) (int, error) {
	var out struct {
		Points int `json:"pontos"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/usuario/pontos", nil, &out); err != nil {
		return 0, err
	}
	return out.Points, nil
}

// SetPoints writes the absolute new balance via PUT /usuario/pontos.
func (c *Client) SetPoints(ctx context.Context, points int) error {
	body := map[string]int{"pontos": points}
	return c.doJSON(ctx, http.MethodPut, "/usuario/pontos", body, nil)
}

// AppendHistory records a point award via POST /hist/pontos.
func (c *Client) AppendHistory(ctx context.Context, record History) error {
	return c.doJSON(ctx, http.MethodPost, "/hist/pontos", record, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode ledger request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("access-token", c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ledger %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode ledger response: %w", err)
		}
	}
	return nil
}
