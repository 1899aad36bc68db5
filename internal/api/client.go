// Package api is the client for the TableNest backend. Every endpoint is
// a POST with a JSON body; application failures come back as an "error"
// string on an otherwise successful response.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the backend the client talks to unless configured
// otherwise.
const DefaultBaseURL = "https://localhost:8080"

const requestTimeout = 10 * time.Second

// Client wraps the TableNest backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// APIError is an application error reported by the backend in the
// response body, as opposed to a transport failure.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorCarrier is implemented by every response struct via an embedded
// responseError, so post can surface backend-reported errors uniformly.
type errorCarrier interface {
	apiError() string
}

type responseError struct {
	Error string `json:"error"`
}

func (r responseError) apiError() string { return r.Error }

// post issues one backend call and decodes the response into out. A
// non-empty "error" field in the response body is returned as *APIError.
func (c *Client) post(ctx context.Context, path string, body any, out errorCarrier) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("request encoding failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSON decode error: %w", err)
	}

	if msg := out.apiError(); msg != "" {
		return &APIError{Message: msg}
	}
	return nil
}
