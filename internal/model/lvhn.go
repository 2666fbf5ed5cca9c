package model

import "net/url"

// LvhnSummary is the listing-page portion of a hospital-network (LVHN)
// profile. One listing page yields many summaries; each summary's details
// page is fetched separately and paired into an LvhnProfile.
type LvhnSummary struct {
	// Name is the physician's display name.
	Name string `json:"name"`

	// DetailsURI is the absolute link to the physician's detail page.
	// It is the natural key for deduplication of LVHN profiles and is
	// required: a summary without a details link is a parse error.
	DetailsURI *url.URL `json:"details_uri"`

	// ImageURI is the absolute headshot URI, nil when the listing has none.
	ImageURI *url.URL `json:"image_uri,omitempty"`

	// AcceptingNewPatients reports whether the listing carries the
	// accepting-new-patients marker.
	AcceptingNewPatients bool `json:"accepting_new_patients"`

	// Specialties and AreasOfFocus are the highlight lists on the listing.
	Specialties  []string `json:"specialties,omitempty"`
	AreasOfFocus []string `json:"areas_of_focus,omitempty"`

	// Locations are the practice locations shown on the listing entry.
	Locations []Location `json:"locations,omitempty"`
}

// LvhnDetails is the detail-page portion of a hospital-network profile.
type LvhnDetails struct {
	// Bio is the biography text.
	Bio string `json:"bio,omitempty"`

	// Degrees, Training, and Certifications are the three history
	// subsections of the detail page.
	Degrees        []Experience `json:"degrees,omitempty"`
	Training       []Experience `json:"training,omitempty"`
	Certifications []Experience `json:"certifications,omitempty"`

	// ScholarlyWorksURI links to the physician's publication listing,
	// nil when absent.
	ScholarlyWorksURI *url.URL `json:"scholarly_works_uri,omitempty"`

	// ConditionsTreated and ServicesOffered are the detail-page term lists.
	ConditionsTreated []string `json:"conditions_treated,omitempty"`
	ServicesOffered   []string `json:"services_offered,omitempty"`

	// Ratings holds the aggregate and per-category patient ratings parsed
	// from the reviews section. Empty when the section is absent or
	// unparsable; rating parse failures are never fatal.
	Ratings []Rating `json:"ratings,omitempty"`
}

// LvhnProfile pairs a summary with its details. Details may be nil when the
// detail fetch or parse failed; in that case Err records the failure and the
// rest of the batch continues.
type LvhnProfile struct {
	Summary *LvhnSummary `json:"summary"`
	Details *LvhnDetails `json:"details,omitempty"`

	// Err is the details fetch/parse failure for this profile, empty on
	// success. Recorded instead of aborting the batch.
	Err string `json:"error,omitempty"`
}
