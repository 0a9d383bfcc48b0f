package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the Serper search API endpoint.
const DefaultEndpoint = "https://google.serper.dev/search"

// MaxPages is the hard pagination ceiling the API supports.
const MaxPages = 100

// resultsPerPage is the page size requested from the API.
const resultsPerPage = 10

// ErrorKind classifies a terminal API failure.
type ErrorKind string

const (
	// KindUnauthorized means the API key was rejected.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindRateLimited means the API asked us to back off.
	KindRateLimited ErrorKind = "rate-limited"
	// KindMalformedRequest means the API rejected the query.
	KindMalformedRequest ErrorKind = "malformed-request"
	// KindTransport covers network-level and unexpected-status failures.
	KindTransport ErrorKind = "transport-error"
)

// APIError is a classified search API failure. Per-query errors are
// non-fatal: the adapter reports them and moves on to the next query.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search API %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("search API %s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Client fetches one page of search results for a query.
type Client interface {
	Search(ctx context.Context, query string, page int) (*Response, error)
}

// SerperClient talks to the Serper JSON API.
type SerperClient struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

// NewSerperClient creates a client with the default endpoint and timeout.
func NewSerperClient(apiKey string) *SerperClient {
	return &SerperClient{
		APIKey:     apiKey,
		Endpoint:   DefaultEndpoint,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search submits one query page. Errors are classified as APIError so the
// adapter and the commands can decide which ones deserve operator-facing
// guidance.
func (c *SerperClient) Search(ctx context.Context, query string, page int) (*Response, error) {
	payload := map[string]any{"q": query, "num": resultsPerPage}
	if page > 1 {
		payload["page"] = page
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &APIError{Kind: KindMalformedRequest, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("X-API-KEY", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &APIError{Kind: KindUnauthorized, StatusCode: resp.StatusCode, Message: "API key rejected"}
	case http.StatusTooManyRequests:
		return nil, &APIError{Kind: KindRateLimited, StatusCode: resp.StatusCode, Message: "rate limited, wait and retry"}
	case http.StatusBadRequest:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, &APIError{Kind: KindMalformedRequest, StatusCode: resp.StatusCode, Message: string(detail)}
	default:
		return nil, &APIError{Kind: KindTransport, StatusCode: resp.StatusCode, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "failed to decode response", Cause: err}
	}
	return &parsed, nil
}
