// ABOUTME: Standard HTTP client used by the upstream keyword sources
// ABOUTME: GET requests retry on 5xx with exponential backoff; other methods are sent once

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"keywords-app-api/core/interfaces"
)

const (
	maxRetries = 3
	userAgent  = "KeywordsAPI/1.0"
)

// StandardHTTPClient implements the HTTPClient interface on net/http
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, nil)
}

// Post performs an HTTP POST request with a JSON body
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return c.Do(ctx, http.MethodPost, url, map[string]string{"Content-Type": "application/json"}, body)
}

// Do performs a request with the given headers. Only GET is retried.
func (c *StandardHTTPClient) Do(ctx context.Context, method, url string, headers map[string]string, body io.Reader) (interfaces.Response, error) {
	attempts := 1
	if method == http.MethodGet && body == nil {
		attempts = maxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			// 100ms, 200ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		// last attempt returns whatever the server sent
		if resp.StatusCode < 500 || attempt == attempts-1 {
			return &httpResponse{
				statusCode: resp.StatusCode,
				body:       resp.Body,
				headers:    resp.Header,
			}, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return nil, lastErr
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
