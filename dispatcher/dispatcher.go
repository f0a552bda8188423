// Package dispatcher issues the single HTTP call behind every dashboard
// action and hands the decoded JSON back to the caller.
package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrMalformedBody is returned when a 2xx response does not decode as JSON.
var ErrMalformedBody = errors.New("malformed upstream response")

// maxErrorBody caps how much of a failed response is kept for logging.
const maxErrorBody = 4 << 10

// UpstreamError reports a non-2xx response.
type UpstreamError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: upstream responded with status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client performs exactly one attempt per call. There is no retry.
type Client struct {
	HTTP HTTPClient
}

// New returns a Client backed by c, or http.DefaultClient when c is nil.
func New(c HTTPClient) *Client {
	if c == nil {
		c = http.DefaultClient
	}
	return &Client{HTTP: c}
}

// PostJSON sends body as JSON to endpoint and decodes the response into out.
// out may be nil when the caller does not need the body.
func (c *Client) PostJSON(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

// GetJSON issues a GET with query appended to endpoint and decodes the
// response into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	target := endpoint
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		target = endpoint + sep + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{
			Method:     req.Method,
			URL:        redact(req.URL),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode
	}
	return 0
}

// redact strips credentials passed as query parameters.
func redact(u *url.URL) string {
	clone := *u
	q := clone.Query()
	for _, key := range []string{"appid", "key", "api_key", "apikey"} {
		if q.Has(key) {
			q.Set(key, "REDACTED")
		}
	}
	clone.RawQuery = q.Encode()
	return clone.String()
}
