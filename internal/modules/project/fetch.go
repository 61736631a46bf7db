package project

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"
)

const fetchUserAgent = "Mozilla/5.0 (compatible; Auto-Explainer/1.0)"

// Fetcher retrieves the text behind a source URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// HTTPFetcher GETs a URL and keeps the first maxChars characters of the body.
// The status code is not checked; error pages are used as text too.
type HTTPFetcher struct {
	client   *http.Client
	maxChars int
}

func NewHTTPFetcher(timeout time.Duration, maxChars int) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}, maxChars: maxChars}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(f.maxChars)*utf8.UTFMax))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return truncateRunes(string(body), f.maxChars), nil
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
