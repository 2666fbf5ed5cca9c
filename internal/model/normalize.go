package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// keyFolder performs Unicode case folding for identity comparisons.
// Folding (rather than upper-casing with a specific locale) gives stable
// caseless matching for names that may contain accented characters.
var keyFolder = cases.Fold()

// NormalizeName trims surrounding whitespace and case-folds a name so that
// two spellings of the same logical value compare equal. This is the identity
// rule shared by every named lookup entity: a lookup row is never duplicated
// for the same normalized name.
func NormalizeName(s string) string {
	return keyFolder.String(strings.TrimSpace(s))
}
