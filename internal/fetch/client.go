package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Default client settings. Kept deliberately gentle: the sources are
// production sites serving patients, not scrape targets built for load.
const (
	// DefaultDelay is the minimum pause between consecutive requests.
	DefaultDelay = 500 * time.Millisecond

	// DefaultTimeout bounds a single request including body read.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize limits how much of a response body is read.
	// Listing and detail pages are well under 1MB; the cap guards against
	// unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies the scraper in requests.
	DefaultUserAgent = "docdirscan/1.0"
)

// imageExtPattern extracts the leading sane portion of a file extension,
// dropping query-string debris like ".jpg?itok=abc".
var imageExtPattern = regexp.MustCompile(`^[-.\w]+`)

// Client fetches pages and images from the directory sites.
// All methods are safe for use from a single goroutine; the scrape pipeline
// is sequential by design and the internal mutex only protects the
// last-request timestamp against accidental concurrent use.
type Client struct {
	httpClient  *http.Client
	delay       time.Duration
	maxBodySize int64
	userAgent   string

	mu       sync.Mutex
	lastDone time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithDelay sets the mandatory pause between consecutive requests.
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		c.delay = d
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		c.maxBodySize = n
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying HTTP client.
// Used by tests to point the Client at an httptest server transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		delay:       DefaultDelay,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchHTML downloads a page and returns its body as a string.
// Non-2xx responses are errors. The politeness delay is applied before the
// request when the previous request finished less than the delay ago.
func (c *Client) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	body, err := c.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadImage fetches an image and writes it into destDir under a
// collision-resistant filename derived from the source name plus a UUID.
// Returns the local path of the written file.
func (c *Client) DownloadImage(ctx context.Context, imageURL, destDir string) (string, error) {
	body, err := c.fetch(ctx, imageURL)
	if err != nil {
		return "", err
	}

	name := path.Base(imageURL)
	ext := imageExtPattern.FindString(path.Ext(name))
	base := strings.TrimSuffix(name, path.Ext(name))
	filename := fmt.Sprintf("%s-%s%s", base, uuid.NewString(), ext)

	dest := filepath.Join(destDir, filename)
	if err := os.WriteFile(dest, body, 0600); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", dest, err)
	}
	return dest, nil
}

// fetch performs one rate-limited GET and returns the (size-capped) body.
func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.pause(ctx); err != nil {
		return nil, err
	}
	defer func() {
		c.mu.Lock()
		c.lastDone = time.Now()
		c.mu.Unlock()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Best-effort close on read path

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}
	return body, nil
}

// pause blocks until the politeness delay since the previous request has
// elapsed, or the context is cancelled.
func (c *Client) pause(ctx context.Context) error {
	c.mu.Lock()
	wait := c.delay - time.Since(c.lastDone)
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}
