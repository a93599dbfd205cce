// ABOUTME: HTTP request pipeline for the TaskFlow API
// ABOUTME: Attaches auth headers and classifies every response into an Outcome

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the single entry point for all outbound API calls. It owns
// URL construction, header injection, and response classification. It
// reads the session token through the store and clears it on 401; no
// other component touches token storage during a request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    TokenSource
	expired    func()
}

// TokenSource is the slice of the session store the pipeline needs.
type TokenSource interface {
	Token() (string, bool)
	ClearToken() error
}

// New creates a client for the given base URL and session store.
func New(baseURL string, session TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: session,
	}
}

// OnSessionExpired registers a hook invoked whenever a 401 is observed.
// The hook owns the navigate-to-login decision, including suppressing it
// on screens where a redirect would loop (login, signup, welcome).
func (c *Client) OnSessionExpired(fn func()) {
	c.expired = fn
}

// SetHTTPClient replaces the underlying HTTP client. Test hook.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one API call and classifies the response. It never
// retries and never returns an error; every failure mode is one of the
// Outcome variants. Session expiry is classified before anything else
// so it can never be misreported as a network or application error.
func (c *Client) Do(ctx context.Context, method, path string, body any) Outcome {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Outcome{Kind: KindNetworkError, Message: "marshal request: " + err.Error()}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return Outcome{Kind: KindNetworkError, Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Outcome{Kind: KindNetworkError, Message: c.networkMessage(ctx, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.ClearToken()
		if c.expired != nil {
			c.expired()
		}
		return Outcome{
			Kind:    KindSessionExpired,
			Message: "Session expired. Please log in again.",
			Status:  resp.StatusCode,
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return Outcome{Kind: KindSuccessEmpty, Status: resp.StatusCode}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Kind: KindNetworkError, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{
			Kind:    KindApplicationError,
			Message: errorMessage(respBody, resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}

	return Outcome{Kind: KindSuccess, Data: respBody, Status: resp.StatusCode}
}

// networkMessage converts transport errors to user-facing messages.
func (c *Client) networkMessage(ctx context.Context, err error) string {
	if ctx.Err() == context.Canceled {
		return "request canceled"
	}
	if ctx.Err() == context.DeadlineExceeded {
		return "request timed out"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Network error"
}

// errorMessage extracts the server's detail field, falling back to a
// generic HTTP status message when the body is not a structured error.
func errorMessage(body []byte, status int) string {
	var errResp struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		return errResp.Detail
	}
	return fmt.Sprintf("HTTP %d", status)
}
