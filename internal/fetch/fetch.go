// Package fetch retrieves upstream lottery pages and hands back parsed
// documents. Every request carries a bounded timeout so a hung upstream
// cannot stall a whole refresh cycle.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
)

const (
	// UserAgent identifies this service to the upstream lottery sites.
	UserAgent = "nc-lottery-backend/1.0 (github.com/notacoder13/nc-lottery-backend)"

	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 15 * time.Second
)

// Fetcher fetches and parses upstream pages with retry.
type Fetcher struct {
	client        *http.Client
	maxRetries    uint64
	retryInterval time.Duration
}

// New creates a Fetcher with the given per-request timeout. A
// non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client:        &http.Client{Timeout: timeout},
		maxRetries:    2,
		retryInterval: 500 * time.Millisecond,
	}
}

// Document fetches url and parses its body as HTML. Transient failures
// (network errors, non-200 responses) are retried with exponential
// backoff before giving up.
func (f *Fetcher) Document(ctx context.Context, url string) (*goquery.Document, error) {
	var doc *goquery.Document

	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		d, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("parsing HTML: %w", err))
		}
		doc = d
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = f.retryInterval

	err := backoff.Retry(fetch, backoff.WithContext(backoff.WithMaxRetries(policy, f.maxRetries), ctx))
	if err != nil {
		return nil, err
	}
	return doc, nil
}
