// Package upstream is the HTTP client for the black-box commerce backend.
// It plays the repository role: every module talks to it through a small
// interface and receives domain models, never wire shapes.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"storefront-gateway/internal/models"
)

// maxResponseSize bounds how much of an upstream response body is read (10MB).
const maxResponseSize = 10 * 1024 * 1024

// Client calls the upstream commerce API. The bearer token travels with each
// call rather than living on the client, keeping the session explicit.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given backend origin.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// errorBody is the JSON error shape the upstream returns on rejections.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one authenticated request. A transport failure maps to
// ErrUpstreamUnavailable, a 401 to ErrSessionExpired, and any other non-2xx
// to an UpstreamError carrying the body's message when one was present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, header http.Header, token string, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", models.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return models.ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		message := eb.Message
		if message == "" {
			message = eb.Error
		}
		return &models.UpstreamError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", models.ErrUpstreamUnavailable, err)
		}
	}
	return nil
}

func userQuery(userID string) url.Values {
	q := url.Values{}
	q.Set("userId", userID)
	return q
}
