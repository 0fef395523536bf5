package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every outbound request (connect + read). The remote
// hosts here (iTunes lookup, feed hosts, episode pages) normally respond in
// well under a second.
const DefaultTimeout = 10 * time.Second

// userAgent is a browser-like User-Agent. Some feed and episode hosts return
// 403/406 to requests carrying Go's default agent.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client wraps an http.Client with a request timeout and browser-like headers.
type Client struct {
	client *http.Client
}

// New creates a Client with the given request timeout. A timeout <= 0 falls
// back to DefaultTimeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do executes the request with browser-like headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	setHeaders(req)
	return c.client.Do(req)
}

// Get issues a GET request for url. The caller owns the response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// FetchBytes issues a GET request and returns the full response body along
// with the Content-Type header. Non-200 responses are an error.
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, "", err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return body, resp.Header.Get("Content-Type"), nil
}

func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
}

// drainAndClose reads the remaining body before closing so the underlying
// connection can be reused.
func drainAndClose(rc io.ReadCloser) {
	if rc == nil {
		return
	}
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
