// ABOUTME: Shared request helper for upstream source clients
// ABOUTME: Maps transport failures, non-2xx responses and bad payloads to UpstreamError

package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"keywords-app-api/core/errors"
	"keywords-app-api/core/interfaces"
)

// maxBodyBytes caps how much of an upstream response is read
const maxBodyBytes = 5 << 20

// ReadBody performs a GET and returns the body of a 2xx response
func ReadBody(ctx context.Context, client interfaces.HTTPClient, source, url string, headers map[string]string) ([]byte, error) {
	resp, err := client.Do(ctx, http.MethodGet, url, headers, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &errors.UpstreamError{Source: source, Message: "request failed", Err: err}
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxBodyBytes))
	if err != nil {
		return nil, &errors.UpstreamError{Source: source, StatusCode: resp.StatusCode(), Message: "failed to read response", Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &errors.UpstreamError{
			Source:     source,
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode()),
		}
	}
	return body, nil
}

// GetJSON performs a GET and decodes a 2xx JSON response into dest
func GetJSON(ctx context.Context, client interfaces.HTTPClient, source, url string, headers map[string]string, dest interface{}) error {
	body, err := ReadBody(ctx, client, source, url, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return &errors.UpstreamError{Source: source, Message: "malformed response", Err: err}
	}
	return nil
}
