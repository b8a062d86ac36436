package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

// TextFetcher retrieves the raw caption text behind a subtitle URL.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches subtitle documents over HTTP. Concurrent requests
// for the same URL are collapsed into one, so re-resolving a server
// source repeatedly stays cheap and returns identical content while the
// underlying asset is unchanged.
type HTTPFetcher struct {
	httpClient *http.Client
	group      singleflight.Group
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPFetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchText downloads the body as UTF-8 text. The response content type
// is ignored; caption endpoints are inconsistent about it.
func (f *HTTPFetcher) FetchText(ctx context.Context, url string) (string, error) {
	v, err, _ := f.group.Do(url, func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", fmt.Errorf("build subtitle request: %w", err)
		}

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("fetch subtitle: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", fmt.Errorf("fetch subtitle: unexpected status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read subtitle body: %w", err)
		}
		return string(body), nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
