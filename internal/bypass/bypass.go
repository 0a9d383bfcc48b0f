// Package bypass provides a client for a FlareSolverr-style anti-bot
// bypass service: the service renders the target page once to obtain a
// valid session, and the caller re-requests directly with the returned
// cookies and user agent.
package bypass

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds the solve step on the service side.
const DefaultTimeout = 60 * time.Second

// Error is a bypass service failure. It fails only the URL being fetched,
// never the batch.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bypass error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("bypass error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client talks to a bypass service instance.
type Client struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Timeout:    DefaultTimeout,
		HTTPClient: &http.Client{Timeout: DefaultTimeout + 10*time.Second},
	}
}

type solveRequest struct {
	Cmd        string `json:"cmd"`
	URL        string `json:"url"`
	MaxTimeout int    `json:"maxTimeout"`
}

type solveResponse struct {
	Status   string `json:"status"`
	Solution struct {
		Cookies []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"cookies"`
		UserAgent string `json:"userAgent"`
	} `json:"solution"`
}

// Fetch asks the service to solve the target's anti-bot challenge, then
// re-requests the URL directly with the solved session. The caller owns the
// returned response body.
func (c *Client) Fetch(ctx context.Context, targetURL string) (*http.Response, error) {
	body, err := json.Marshal(solveRequest{
		Cmd:        "request.get",
		URL:        targetURL,
		MaxTimeout: int(c.Timeout.Milliseconds()),
	})
	if err != nil {
		return nil, &Error{Message: "failed to encode solve request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Message: "failed to create solve request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "solve request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: fmt.Sprintf("solve returned status %d", resp.StatusCode)}
	}

	var solved solveResponse
	if err := json.NewDecoder(resp.Body).Decode(&solved); err != nil {
		return nil, &Error{Message: "failed to decode solve response", Cause: err}
	}
	if solved.Status != "ok" {
		return nil, &Error{Message: fmt.Sprintf("solve status %q", solved.Status)}
	}

	direct, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, &Error{Message: "failed to create direct request", Cause: err}
	}
	if solved.Solution.UserAgent != "" {
		direct.Header.Set("User-Agent", solved.Solution.UserAgent)
	}
	for _, cookie := range solved.Solution.Cookies {
		direct.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	out, err := c.HTTPClient.Do(direct)
	if err != nil {
		return nil, &Error{Message: "direct request failed", Cause: err}
	}
	return out, nil
}
