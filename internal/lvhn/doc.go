// Package lvhn parses physician profiles from the hospital-network (LVHN)
// listing site and assembles them into complete profile records.
//
// The site is a conventional server-rendered listing: a paginated search
// results page yields summary cards, and each card links to a detail page
// with history, conditions, services, and ratings. ParseSummaries and
// ParseDetails are pure functions over raw HTML strings; the Crawler drives
// pagination and detail fetching through the fetch package, strictly one
// request at a time.
//
// Parsing tolerates missing optional content (empty lists, empty strings).
// The one structural requirement on a summary card is its details link: a
// card without one cannot be keyed or fetched and is reported as a skipped
// item. A detail page that fails to fetch or parse does not abort the batch;
// the failure is recorded on that profile and processing continues.
package lvhn
