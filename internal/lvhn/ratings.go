package lvhn

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/eg467/docdirscan/internal/model"
)

// Class fragments addressing the reviews section of the detail page.
const (
	classRatings        = "ratings"
	classRatingCategory = "rating-category"
	classRatingScore    = "score"
)

// ratingCategoryOverall is the category recorded for the page-level
// aggregate rating.
const ratingCategoryOverall = "Overall"

// Rating text patterns. The aggregate line reads like
// "4.8 out of 5 (132 ratings)"; category labels read like
// "Bedside Manner (57)" with the numeric score in a separate score node.
// The two patterns are matched independently: either may fail alone and the
// corresponding rating is simply omitted, never a parse error.
var (
	aggregatePattern      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s+out of\s+(\d+)`)
	aggregateCountPattern = regexp.MustCompile(`\((\d+)\s+ratings?\)`)
	categoryLabelPattern  = regexp.MustCompile(`^(.*?)\s*\((\d+)\)$`)
)

// parseRatings extracts the aggregate and per-category patient ratings from
// the reviews section, if any.
func parseRatings(doc *html.Node) []model.Rating {
	section := findNode(doc, byClass("", classRatings))
	if section == nil {
		return nil
	}

	var ratings []model.Rating
	if overall, ok := parseAggregate(innerText(section)); ok {
		ratings = append(ratings, overall)
	}
	for _, category := range findNodes(section, byClass("", classRatingCategory)) {
		if rating, ok := parseCategory(category); ok {
			ratings = append(ratings, rating)
		}
	}
	return ratings
}

// parseAggregate matches the "X out of Y (N ratings)" aggregate line.
// The count clause is optional: a missing count yields zero, not a miss.
func parseAggregate(text string) (model.Rating, bool) {
	m := aggregatePattern.FindStringSubmatch(text)
	if m == nil {
		return model.Rating{}, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return model.Rating{}, false
	}
	maxScale, err := strconv.Atoi(m[2])
	if err != nil {
		return model.Rating{}, false
	}

	rating := model.Rating{
		Value:    value,
		Max:      maxScale,
		Category: ratingCategoryOverall,
		Source:   model.SourceLvhn,
	}
	if c := aggregateCountPattern.FindStringSubmatch(text); c != nil {
		rating.Count, _ = strconv.Atoi(c[1])
	}
	return rating, true
}

// parseCategory matches one per-category node: a "Label (N)" text plus a
// separately-located numeric score.
func parseCategory(category *html.Node) (model.Rating, bool) {
	score := findNode(category, byClass("", classRatingScore))
	if score == nil {
		return model.Rating{}, false
	}
	value, err := strconv.ParseFloat(innerText(score), 64)
	if err != nil {
		return model.Rating{}, false
	}

	// The label is the category text with the score node's text removed.
	label := strings.TrimSpace(strings.Replace(innerText(category), innerText(score), "", 1))
	m := categoryLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return model.Rating{}, false
	}
	count, _ := strconv.Atoi(m[2])

	return model.Rating{
		Value:    value,
		Max:      5,
		Category: strings.TrimSpace(m[1]),
		Source:   model.SourceLvhn,
		Count:    count,
	}, true
}
