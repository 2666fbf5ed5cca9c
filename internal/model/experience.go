package model

import (
	"fmt"
	"strings"
)

// ExperienceLevel classifies an experience entry by rough career stage.
// The ordering is meaningful: higher values represent later stages, which
// lets callers sort mixed history lists chronologically-by-kind.
//
// The level names double as the seed rows for the experience-type lookup
// table, so renaming a constant changes the seeded schema.
type ExperienceLevel int

const (
	// LevelUnknown is used when the source text gives no recognizable stage.
	LevelUnknown ExperienceLevel = iota

	// LevelEducation covers undergraduate and medical-school entries.
	LevelEducation

	// LevelTraining covers general post-graduate training entries.
	LevelTraining

	// LevelCertification covers board and specialty certifications.
	LevelCertification

	// LevelInternship covers internship years.
	LevelInternship

	// LevelResidency covers residency programs.
	LevelResidency

	// LevelFellowship covers fellowship programs, the latest stage tracked.
	LevelFellowship
)

// String returns the human-readable level name.
func (l ExperienceLevel) String() string {
	switch l {
	case LevelUnknown:
		return "Unknown"
	case LevelEducation:
		return "Education"
	case LevelTraining:
		return "Training"
	case LevelCertification:
		return "Certification"
	case LevelInternship:
		return "Internship"
	case LevelResidency:
		return "Residency"
	case LevelFellowship:
		return "Fellowship"
	default:
		return "Unknown"
	}
}

// ExperienceLevels returns all defined levels in ordinal order.
// Used to seed the experience-type lookup table on database initialization.
func ExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{
		LevelUnknown, LevelEducation, LevelTraining, LevelCertification,
		LevelInternship, LevelResidency, LevelFellowship,
	}
}

// Experience is one entry in a physician's education/training history.
// History rows are not deduplicated across profiles (one row per occurrence);
// only the type and institution they reference are shared lookup entities.
type Experience struct {
	// Type is the experience category label, e.g. "MD" or "Fellowship (Cardiology)".
	Type string `json:"type"`

	// Details is free-form text that accompanied the entry.
	Details string `json:"details,omitempty"`

	// Institution is the school, hospital, or board that granted the entry.
	Institution string `json:"institution"`

	// Year is the completion year extracted from the source text.
	// Nil when the text contained no 4-digit year token.
	Year *int `json:"year,omitempty"`

	// Level is the career stage classification for the entry.
	Level ExperienceLevel `json:"level,omitempty"`
}

// Key derives the identity of the entry used when collapsing duplicate
// entries within a single profile: the normalized (type, institution,
// details) string.
func (e Experience) Key() string {
	return NormalizeName(e.Type) + "|" + NormalizeName(e.Institution) + "|" + NormalizeName(e.Details)
}

// String formats the entry for spreadsheet cells and log output.
func (e Experience) String() string {
	s := e.Type
	if e.Institution != "" {
		s = fmt.Sprintf("%s: %s", e.Type, e.Institution)
	}
	if e.Year != nil {
		s = fmt.Sprintf("%s (%d)", s, *e.Year)
	}
	return strings.TrimSpace(s)
}
