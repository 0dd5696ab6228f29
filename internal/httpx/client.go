// Package httpx provides the shared HTTP plumbing for the remote API
// clients: a timeout-bounded client, JSON decoding and the translation
// of transport failures into messages fit for the UI.
package httpx

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no timeout is configured
const DefaultTimeout = 15 * time.Second

// Client wraps http.Client with JSON and byte-fetch helpers
type Client struct {
	hc *http.Client
}

// New creates a Client with the specified per-request timeout
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		hc: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetJSON performs a GET request and decodes the JSON response into out
func (c *Client) GetJSON(url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return friendlyTransportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if looksLikeHTML(body) {
			return fmt.Errorf("API blocked by network. Try using a VPN.")
		}
		return fmt.Errorf("API error: %s", resp.Status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// GetBytes performs a GET request and returns the raw body, reading at
// most maxBytes (0 means unlimited)
func (c *Client) GetBytes(url string, maxBytes int64) ([]byte, error) {
	resp, err := c.hc.Get(url)
	if err != nil {
		return nil, friendlyTransportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request returned status %d: %s", resp.StatusCode, resp.Status)
	}

	var reader io.Reader = resp.Body
	if maxBytes > 0 {
		reader = io.LimitReader(resp.Body, maxBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// looksLikeHTML detects captive portals and proxy block pages that
// answer API requests with an HTML document
func looksLikeHTML(body []byte) bool {
	s := string(body)
	return strings.Contains(s, "<!DOCTYPE") || strings.Contains(s, "<html")
}

// friendlyTransportError rewrites low-level transport failures into
// messages the UI can show directly
func friendlyTransportError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "certificate"):
		return fmt.Errorf("Network proxy blocking connection. Try using a VPN.")
	case strings.Contains(msg, "connect") || strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded"):
		return fmt.Errorf("Unable to connect. Check your internet connection.")
	default:
		return fmt.Errorf("Connection error: %w", err)
	}
}
