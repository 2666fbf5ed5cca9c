package model

// RatingSource identifies which system a rating was collected from.
type RatingSource int

const (
	// SourceUnknown is used when the rating origin cannot be determined.
	SourceUnknown RatingSource = iota

	// SourceIbx marks ratings scraped from the insurance-network directory.
	SourceIbx

	// SourceLvhn marks ratings scraped from the hospital-network site.
	SourceLvhn

	// SourceExternal marks ratings the directory relays from a third party.
	SourceExternal
)

// String returns the lookup-table name for the source.
func (s RatingSource) String() string {
	switch s {
	case SourceIbx:
		return "IBX"
	case SourceLvhn:
		return "LVHN"
	case SourceExternal:
		return "External"
	default:
		return "Unknown"
	}
}

// Rating is one aggregate or per-category patient rating for a profile.
type Rating struct {
	// Value is the numeric score, e.g. 4.8.
	Value float64 `json:"value"`

	// Max is the scale the score is measured against, e.g. 5.
	Max int `json:"max"`

	// Category is the rating category label, e.g. "Overall" or
	// "Bedside Manner". Category names are shared lookup entities.
	Category string `json:"category"`

	// Source identifies the system the rating came from.
	Source RatingSource `json:"source"`

	// Count is the number of individual ratings behind the score.
	Count int `json:"count"`
}
