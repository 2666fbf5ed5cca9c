package ibx

import (
	"fmt"
	"net/url"
	"strings"
)

// StandardizeLink converts a profile link scraped from the listing page into
// an absolute URL. It is the entry point for whatever captures profile
// documents: links are resolved against the listing URL before the document
// is published into a Feed, so consumers only ever see absolute URIs.
// Recorded captures arrive with their links already resolved, which is why
// nothing on the replay path calls it.
//
// The listing emits links in three forms: already absolute, fragment-only
// ("#/provider/123", the SPA's internal routing), and path-relative.
// Anything else is a hard parse error, since a link that cannot be resolved
// means the listing markup changed and every subsequent profile fetch would
// silently target the wrong page.
func StandardizeLink(base *url.URL, href string) (string, error) {
	if href == "" {
		return "", fmt.Errorf("empty profile link")
	}

	if strings.HasPrefix(href, "#") {
		if base == nil {
			return "", fmt.Errorf("fragment profile link %q with no base URL", href)
		}
		u := *base
		u.Fragment = strings.TrimPrefix(href, "#")
		return u.String(), nil
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid profile link %q: %w", href, err)
	}
	if parsed.IsAbs() {
		return parsed.String(), nil
	}
	if base == nil {
		return "", fmt.Errorf("relative profile link %q with no base URL", href)
	}
	resolved := base.ResolveReference(parsed)
	if !resolved.IsAbs() {
		return "", fmt.Errorf("unresolvable profile link %q", href)
	}
	return resolved.String(), nil
}
