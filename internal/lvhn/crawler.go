package lvhn

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/eg467/docdirscan/internal/fetch"
	"github.com/eg467/docdirscan/internal/model"
)

// DefaultMaxPages bounds listing pagination so a misbehaving endpoint that
// keeps returning results cannot run the crawl forever.
const DefaultMaxPages = 100

// pageParam is the query parameter the listing endpoint uses for pagination.
// Pages are numbered from zero; a page yielding no result cards is terminal.
const pageParam = "page"

// Crawler fetches physician listing and detail pages and assembles them
// into profiles. All fetches go through a single fetch.Client, so the
// politeness delay spans the entire crawl.
type Crawler struct {
	client   *fetch.Client
	maxPages int
	logger   *slog.Logger
}

// CrawlerOption configures a Crawler.
type CrawlerOption func(*Crawler)

// WithMaxPages caps how many listing pages a crawl will request.
func WithMaxPages(n int) CrawlerOption {
	return func(c *Crawler) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// WithLogger sets the logger used for per-page and per-profile progress.
func WithLogger(logger *slog.Logger) CrawlerOption {
	return func(c *Crawler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCrawler creates a Crawler backed by the given HTTP client.
func NewCrawler(client *fetch.Client, opts ...CrawlerOption) *Crawler {
	c := &Crawler{
		client:   client,
		maxPages: DefaultMaxPages,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSummaries walks the listing pages for listingURI, collecting the
// summary cards from each page. Pagination sets the page query parameter to
// 0, 1, 2, ... and stops at the first page that yields no cards. Individual
// cards that fail to parse are logged and skipped; a page that fails to
// fetch or parse fails the crawl.
func (c *Crawler) FetchSummaries(ctx context.Context, listingURI *url.URL) ([]model.LvhnSummary, error) {
	var all []model.LvhnSummary
	for page := 0; page < c.maxPages; page++ {
		pageURI := withPage(listingURI, page)
		c.logger.InfoContext(ctx, "fetching listing page", "page", page, "uri", pageURI.String())

		body, err := c.client.FetchHTML(ctx, pageURI.String())
		if err != nil {
			return nil, fmt.Errorf("fetch listing page %d: %w", page, err)
		}
		summaries, skipped, err := ParseSummaries(body, listingURI)
		if err != nil {
			return nil, fmt.Errorf("parse listing page %d: %w", page, err)
		}
		for _, serr := range skipped {
			c.logger.WarnContext(ctx, "skipping unparseable result card", "page", page, "error", serr)
		}
		if len(summaries) == 0 {
			break
		}
		all = append(all, summaries...)
	}
	return all, nil
}

// FetchDetails fetches and parses the detail page for one summary.
func (c *Crawler) FetchDetails(ctx context.Context, summary model.LvhnSummary) (*model.LvhnDetails, error) {
	if summary.DetailsURI == nil {
		return nil, fmt.Errorf("summary %q has no details link", summary.Name)
	}
	body, err := c.client.FetchHTML(ctx, summary.DetailsURI.String())
	if err != nil {
		return nil, fmt.Errorf("fetch details for %q: %w", summary.Name, err)
	}
	details, err := ParseDetails(body, summary.DetailsURI)
	if err != nil {
		return nil, fmt.Errorf("parse details for %q: %w", summary.Name, err)
	}
	return details, nil
}

// FetchProfiles runs a full crawl: all listing pages, then the detail page
// of every summary found. A detail page that fails to fetch or parse does
// not abort the batch; the failure is recorded on that profile's Err field
// and its Details left nil.
func (c *Crawler) FetchProfiles(ctx context.Context, listingURI *url.URL) ([]model.LvhnProfile, error) {
	summaries, err := c.FetchSummaries(ctx, listingURI)
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "listing crawl complete", "profiles", len(summaries))

	profiles := make([]model.LvhnProfile, 0, len(summaries))
	for i, summary := range summaries {
		if err := ctx.Err(); err != nil {
			return profiles, err
		}
		c.logger.InfoContext(ctx, "fetching profile details",
			"index", i+1, "total", len(summaries), "name", summary.Name)

		profile := model.LvhnProfile{Summary: &summary}
		details, err := c.FetchDetails(ctx, summary)
		if err != nil {
			c.logger.WarnContext(ctx, "profile details unavailable", "name", summary.Name, "error", err)
			profile.Err = err.Error()
		} else {
			profile.Details = details
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// withPage returns a copy of uri with the page query parameter set.
func withPage(uri *url.URL, page int) *url.URL {
	paged := *uri
	q := paged.Query()
	q.Set(pageParam, strconv.Itoa(page))
	paged.RawQuery = q.Encode()
	return &paged
}
