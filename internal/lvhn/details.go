package lvhn

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/eg467/docdirscan/internal/model"
)

// Class fragments and markers addressing the detail-page markup.
const (
	classBio            = "doctor-bio"
	classHistory        = "history"
	classSubsectionBody = "body"
	classScholarlyWorks = "field-name-field-has-scholarly-works"
	classFullTermList   = "full"

	ariaConditionsLabel = "conditions-label"
	ariaServicesLabel   = "services-label"
)

// History subsections on the detail page, with the level each maps to.
var historySections = []struct {
	Label string
	Level model.ExperienceLevel
}{
	{Label: "Education", Level: model.LevelEducation},
	{Label: "Training", Level: model.LevelTraining},
	{Label: "Certifications", Level: model.LevelCertification},
}

// yearPattern matches the 4-digit completion-year token embedded in history
// entry text.
var yearPattern = regexp.MustCompile(`\d{4}`)

// yearTrimCutset is the punctuation stripped from around a removed year token.
const yearTrimCutset = "\r\n,.: \t"

// ParseDetails parses one physician detail page.
// base resolves the scholarly-works link. Missing sections degrade to empty
// fields; only an unreadable document is an error.
func ParseDetails(htmlText string, base *url.URL) (*model.LvhnDetails, error) {
	doc, err := parseDocument(htmlText)
	if err != nil {
		return nil, fmt.Errorf("malformed detail page: %w", err)
	}

	details := &model.LvhnDetails{
		Bio:               innerText(findNode(doc, byClass("", classBio))),
		ScholarlyWorksURI: parseScholarlyWorks(doc, base),
		ConditionsTreated: parseTermList(doc, ariaConditionsLabel),
		ServicesOffered:   parseTermList(doc, ariaServicesLabel),
		Ratings:           parseRatings(doc),
	}

	history := findNode(doc, byClass("div", classHistory))
	for _, section := range historySections {
		entries := parseHistorySection(history, section.Label, section.Level)
		switch section.Level {
		case model.LevelEducation:
			details.Degrees = entries
		case model.LevelTraining:
			details.Training = entries
		case model.LevelCertification:
			details.Certifications = entries
		}
	}
	return details, nil
}

// parseHistorySection extracts the listing entries under one <h3> header of
// the history block.
func parseHistorySection(history *html.Node, label string, level model.ExperienceLevel) []model.Experience {
	if history == nil {
		return nil
	}
	body := findSubsectionBody(history, label)
	if body == nil {
		return nil
	}

	var entries []model.Experience
	for _, p := range findNodes(body, byTag("p")) {
		title := innerText(findNode(p, byTag("strong")))
		value := directText(p)
		if title == "" && value == "" {
			continue
		}
		entries = append(entries, newExperience(title, value, level))
	}
	return entries
}

// findSubsectionBody locates the body node that follows the <h3> matching
// label. A following <h3> before any body node means the subsection is
// empty.
func findSubsectionBody(history *html.Node, label string) *html.Node {
	for _, header := range findNodes(history, byTag("h3")) {
		if !strings.EqualFold(innerText(header), label) {
			continue
		}
		for _, sibling := range nextElementSiblings(header) {
			if sibling.Data == "h3" {
				return nil
			}
			if hasClass(sibling, classSubsectionBody) {
				return sibling
			}
		}
		return nil
	}
	return nil
}

// newExperience builds a history entry from a listing's title and value
// text. The completion year is extracted from the value first, then the
// title, and stripped from the text it was found in. A value of the form
// "Institution, Program" folds the program into the type label.
func newExperience(title, value string, level model.ExperienceLevel) model.Experience {
	strippedValue, valueYear := extractYear(value)
	strippedTitle, titleYear := extractYear(title)

	year := valueYear
	if year == nil {
		year = titleYear
	}

	expType := strippedTitle
	institution := strippedValue
	if parts := splitTrimmed(strippedValue, ","); len(parts) > 1 {
		institution = parts[0]
		expType = fmt.Sprintf("%s (%s)", expType, parts[1])
	}

	return model.Experience{
		Type:        expType,
		Details:     strippedValue,
		Institution: institution,
		Year:        year,
		Level:       level,
	}
}

// extractYear pulls the first 4-digit token out of the text, returning the
// text with the token and surrounding punctuation removed. No token means a
// nil year and unchanged text.
func extractYear(s string) (string, *int) {
	match := yearPattern.FindString(s)
	if match == "" {
		return s, nil
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return s, nil
	}
	stripped := strings.Trim(strings.Replace(s, match, "", 1), yearTrimCutset)
	// Removing an interior token can leave doubled separators behind,
	// e.g. "Fellowship, 2015, Cardiology" -> "Fellowship, , Cardiology".
	stripped = strings.Join(splitTrimmed(stripped, ","), ", ")
	return stripped, &year
}

// splitTrimmed splits on sep and trims each part, dropping empties.
func splitTrimmed(s, sep string) []string {
	var parts []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// parseScholarlyWorks extracts the publications link. Only an absolute
// or base-resolvable link is kept; the link is optional.
func parseScholarlyWorks(doc *html.Node, base *url.URL) *url.URL {
	block := findNode(doc, byClass("div", classScholarlyWorks))
	if block == nil {
		return nil
	}
	anchor := findNode(block, byTag("a"))
	if anchor == nil {
		return nil
	}
	href := strings.TrimSpace(attr(anchor, "href"))
	if href == "" {
		return nil
	}
	u, err := url.Parse(href)
	if err != nil {
		return nil
	}
	if u.IsAbs() {
		return u
	}
	if base == nil {
		return nil
	}
	return base.ResolveReference(u)
}

// parseTermList collects the <li> items of the full term list labelled by
// the given aria-describedby value (conditions treated, services offered).
func parseTermList(doc *html.Node, ariaLabel string) []string {
	list := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "ul" &&
			strings.Contains(attr(n, "class"), classFullTermList) &&
			attr(n, "aria-describedby") == ariaLabel
	})
	if list == nil {
		return nil
	}
	var terms []string
	for _, li := range findNodes(list, byTag("li")) {
		if text := innerText(li); text != "" {
			terms = append(terms, text)
		}
	}
	return terms
}
