// Package client is the low-level JSON HTTP transport shared by all
// operations. It knows nothing about envelopes or operations: it posts a
// body, attaches the authorization key and reports status and content.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	client *http.Client
	url    string
	key    string
}

// Response exposes the transport-level outcome. Body is returned for any
// completed exchange, also on non-2xx statuses, for caller diagnostics.
type Response struct {
	StatusCode int
	Body       []byte
}

func New(url, key string) *Client {
	return &Client{
		url:    url,
		key:    key,
		client: &http.Client{},
	}
}

// Send posts body to the configured endpoint. The timeout bounds this single
// attempt; retry policy lives with the caller. A timeout surfaces as
// context.DeadlineExceeded, cancellation of ctx as context.Canceled.
func (c *Client) Send(ctx context.Context, body []byte, timeout time.Duration) (*Response, error) {
	attemptCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		if cause := attemptCtx.Err(); cause != nil {
			return nil, cause
		}
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		if cause := attemptCtx.Err(); cause != nil {
			return nil, cause
		}
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       content,
	}, nil
}
