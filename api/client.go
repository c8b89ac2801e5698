package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/snapsite-dev/storefront-client/auth"
)

// HTTPClient lets tests swap the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrUnauthorized is returned on a 401; the stored token has already been
// cleared by then, so the caller only has to route back to login.
var ErrUnauthorized = errors.New("unauthorized: please login again")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// Client talks to the storefront REST backend. All calls are JSON over
// HTTP with a bearer token attached whenever one is stored.
type Client struct {
	baseURL string
	http    HTTPClient
	tokens  *auth.TokenKeeper
}

func New(baseURL string, tokens *auth.TokenKeeper) *Client {
	return NewWithHTTPClient(baseURL, tokens, &http.Client{Timeout: 15 * time.Second})
}

func NewWithHTTPClient(baseURL string, tokens *auth.TokenKeeper, httpClient HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// do performs one JSON round trip. A nil body sends no payload; a nil out
// discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) send(req *http.Request, out any) error {
	if c.tokens != nil {
		if token, err := c.tokens.Load(); err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Expired or revoked token: drop it so the next screen is login.
		if c.tokens != nil {
			if err := c.tokens.Clear(); err != nil {
				log.Printf("❌ Failed to clear stored token: %v", err)
			}
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls the backend's error text out of its usual
// {"error": ...} or {"message": ...} envelope.
func readErrorMessage(body io.Reader) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}
