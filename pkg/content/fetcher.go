// Package content retrieves remote text documents, such as the purchase and
// delivery terms shown from the main menu.
package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"carleadbot/pkg/ports/notifyport"
)

const maxDocumentSize = 64 << 10 // Telegram messages are capped well below this.

// Fetcher pulls text over HTTP with a bounded per-request timeout.
type Fetcher struct {
	client *http.Client
}

var _ notifyport.Fetcher = (*Fetcher)(nil)

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("content: failed to build request for %q: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("content: failed to fetch %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("content: unexpected status %d fetching %q", resp.StatusCode, url)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return "", fmt.Errorf("content: failed to read body of %q: %w", url, err)
	}
	return string(raw), nil
}
