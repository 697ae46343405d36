// Package tracker is the HTTP client for the token-data API.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tokenguard/tokenguard/internal/schema"
)

const maxErrorBody = 512

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

// Client issues GET requests against the data API with a static API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client. timeout defaults to 15s.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Token fetches GET /tokens/{address}.
func (c *Client) Token(ctx context.Context, address string) (*schema.TokenResponse, error) {
	var out schema.TokenResponse
	if err := c.get(ctx, "/tokens/"+url.PathEscape(address), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Holders fetches GET /tokens/{address}/holders.
func (c *Client) Holders(ctx context.Context, address string) (*schema.HoldersResponse, error) {
	var out schema.HoldersResponse
	if err := c.get(ctx, "/tokens/"+url.PathEscape(address)+"/holders", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

var _ schema.TokenSource = (*Client)(nil)
