package lvhn

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/eg467/docdirscan/internal/model"
)

// Class fragments addressing the listing-page markup.
const (
	classResultColumn    = "result-column"
	classDoctorCard      = "node--type-doctor"
	classCardTitle       = "field--name-node-title"
	classHeadshot        = "headshot"
	classHighlights      = "highlights"
	classAccepting       = "accepting-new-patients"
	classLocationCard    = "node--type-location"
	classLocationPhone   = "field--name-field-phone"
	classAddressLine1    = "address-line1"
	classAddressLine2    = "address-line2"
	classAddressCity     = "locality"
	classAddressState    = "administrative-area"
	classAddressZip      = "postal-code"
	classAddressCountry  = "country"
	classLocationedTitle = "field-name-node-title"
)

// Highlight-list headers on the summary card.
const (
	headerSpecialties  = "Specialties"
	headerAreasOfFocus = "Area of Focus"
)

// ParseSummaries parses one search-results page into summary records.
// base resolves relative detail and image links.
//
// A page without a result column or doctor cards yields an empty slice and
// no error: that is the pagination terminal state, not a failure. A card
// that cannot be parsed (no details link) is dropped from the result and
// reported in skipped so the caller can log it and continue the batch.
func ParseSummaries(htmlText string, base *url.URL) (summaries []model.LvhnSummary, skipped []error, err error) {
	doc, err := parseDocument(htmlText)
	if err != nil {
		return nil, nil, fmt.Errorf("malformed listing page: %w", err)
	}

	column := findNode(doc, byClass("div", classResultColumn))
	if column == nil {
		return nil, nil, nil
	}

	for i, card := range findNodes(column, byClass("article", classDoctorCard)) {
		summary, err := parseSummaryCard(card, base)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("result %d: %w", i+1, err))
			continue
		}
		summaries = append(summaries, *summary)
	}
	return summaries, skipped, nil
}

// parseSummaryCard parses a single doctor card.
func parseSummaryCard(card *html.Node, base *url.URL) (*model.LvhnSummary, error) {
	detailsURI, err := parseDetailsLink(card, base)
	if err != nil {
		return nil, err
	}

	return &model.LvhnSummary{
		Name:                 innerText(findNode(card, byClass("div", classCardTitle))),
		DetailsURI:           detailsURI,
		ImageURI:             parseImageURI(card, base),
		AcceptingNewPatients: findNode(card, func(n *html.Node) bool { return hasClass(n, classAccepting) }) != nil,
		Specialties:          parseHighlightList(card, headerSpecialties),
		AreasOfFocus:         parseHighlightList(card, headerAreasOfFocus),
		Locations:            parseCardLocations(card),
	}, nil
}

// parseDetailsLink extracts the required link to the physician detail page.
func parseDetailsLink(card *html.Node, base *url.URL) (*url.URL, error) {
	title := findNode(card, byClass("div", classCardTitle))
	if title == nil {
		return nil, fmt.Errorf("card has no title node")
	}
	anchor := findNode(title, byTag("a"))
	if anchor == nil {
		return nil, fmt.Errorf("card title has no link")
	}
	href := strings.TrimSpace(attr(anchor, "href"))
	if href == "" {
		return nil, fmt.Errorf("card link has no href")
	}
	rel, err := url.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("invalid details link %q: %w", href, err)
	}
	if rel.IsAbs() {
		return rel, nil
	}
	if base == nil {
		return nil, fmt.Errorf("relative details link %q with no base URL", href)
	}
	return base.ResolveReference(rel), nil
}

// parseImageURI extracts the headshot source; a missing or unparsable
// source yields nil rather than an error.
func parseImageURI(card *html.Node, base *url.URL) *url.URL {
	headshot := findNode(card, byClass("div", classHeadshot))
	if headshot == nil {
		return nil
	}
	img := findNode(headshot, byTag("img"))
	if img == nil {
		return nil
	}
	src := strings.TrimSpace(attr(img, "src"))
	if src == "" {
		return nil
	}
	rel, err := url.Parse(src)
	if err != nil {
		return nil
	}
	if rel.IsAbs() || base == nil {
		return rel
	}
	return base.ResolveReference(rel)
}

// parseHighlightList finds the <h4> header matching the label inside the
// card's highlights block and collects the <li> items of the following <ul>.
func parseHighlightList(card *html.Node, label string) []string {
	highlights := findNode(card, byClass("div", classHighlights))
	if highlights == nil {
		return nil
	}

	for _, header := range findNodes(highlights, byTag("h4")) {
		if !strings.Contains(strings.ToLower(innerText(header)), strings.ToLower(label)) {
			continue
		}
		for _, sibling := range nextElementSiblings(header) {
			if sibling.Data != "ul" {
				continue
			}
			var items []string
			for _, li := range findNodes(sibling, byTag("li")) {
				if text := innerText(li); text != "" {
					items = append(items, text)
				}
			}
			return items
		}
	}
	return nil
}

// parseCardLocations parses the location sub-cards embedded in the summary.
func parseCardLocations(card *html.Node) []model.Location {
	var locations []model.Location
	for _, locNode := range findNodes(card, byClass("div", classLocationCard)) {
		loc := model.Location{
			Name:  innerText(findNode(locNode, byClass("", classLocationedTitle))),
			Phone: innerText(findNode(locNode, byClass("div", classLocationPhone))),
			Address: &model.Address{
				Line1:   innerText(findNode(locNode, byClass("span", classAddressLine1))),
				Line2:   innerText(findNode(locNode, byClass("span", classAddressLine2))),
				City:    innerText(findNode(locNode, byClass("span", classAddressCity))),
				State:   innerText(findNode(locNode, byClass("span", classAddressState))),
				Zip:     innerText(findNode(locNode, byClass("span", classAddressZip))),
				Country: innerText(findNode(locNode, byClass("span", classAddressCountry))),
			},
		}
		locations = append(locations, loc)
	}
	return locations
}
