package model

// IbxProfile is a physician profile parsed from a single insurance-network
// (IBX) profile JSON document. One document yields one profile; there is no
// separate summary/detail fetch for this source.
type IbxProfile struct {
	// ID is the directory's stable external identifier for the physician.
	// It is the natural key for deduplication: a profile row is never
	// duplicated for the same ID. Required; a zero ID is a precondition
	// violation for persistence.
	ID int64 `json:"id"`

	// Name parts as published by the directory.
	FirstName  string `json:"first_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	FullName   string `json:"full_name,omitempty"`

	// Gender as published by the directory.
	Gender string `json:"gender,omitempty"`

	// BoardCertified is the board-certification text, with multiple
	// certifications joined by ", ".
	BoardCertified string `json:"board_certified,omitempty"`

	// Education holds history entries not coded as residencies.
	Education []Experience `json:"education,omitempty"`

	// Residencies holds history entries coded "Residency" by the source.
	Residencies []Experience `json:"residencies,omitempty"`

	// ImageURI is the remote headshot URI, when published.
	ImageURI string `json:"image_uri,omitempty"`

	// GroupAffiliations, HospitalAffiliations, and Locations are the three
	// location categories the directory distinguishes. Each is persisted
	// through its own link table against the shared locations store.
	GroupAffiliations    []Location `json:"group_affiliations,omitempty"`
	HospitalAffiliations []Location `json:"hospital_affiliations,omitempty"`
	Locations            []Location `json:"locations,omitempty"`
}
