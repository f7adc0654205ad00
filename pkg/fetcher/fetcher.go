// Package fetcher retrieves raw page markup over HTTP.
package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is the per-request timeout when none is configured.
const DefaultTimeout = 10 * time.Second

const userAgent = "digest/1.0 (+https://github.com/mpetrov/digest)"

type Fetcher struct {
	client *http.Client
}

func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// GetHTML fetches a page and returns its body as a string. Any transport
// error, timeout, or non-200 status is returned as an error; the caller
// decides whether that fails the run or just the item.
func (f *Fetcher) GetHTML(url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(bodyBytes), nil
}
