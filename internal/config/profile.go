package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so profile fields can be written as
// friendly strings ("500ms", "2s") in YAML. yaml.v3 has no built-in
// duration decoding.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler using time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler, rendering the duration in the
// same string form UnmarshalYAML accepts.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// SearchProfile is a named, reusable search definition. Profiles let a
// recurring search (a specialty watched month over month) live in the
// config file instead of a shell history entry.
type SearchProfile struct {
	// Label is the human-readable search name recorded with the session.
	// If empty, the profile's map key is used.
	Label string `yaml:"label,omitempty"`

	// Specialty is the medical specialty the search targets.
	Specialty string `yaml:"specialty,omitempty"`

	// ListingURI is the first listing page of a hospital-network search.
	ListingURI string `yaml:"listingUri,omitempty"`

	// MaxPages overrides the global listing page cap for this search.
	// If zero, the global MaxPages is used.
	MaxPages int `yaml:"maxPages,omitempty"`

	// Delay overrides the global pause between requests for this search.
	// If zero, the global Delay is used.
	Delay Duration `yaml:"delay,omitempty"`
}

// File represents the structure of the .docdirscan configuration file.
type File struct {
	// Profiles maps profile names to their search definitions.
	// Keys are free-form names chosen by the user (e.g., "cardiology").
	Profiles map[string]SearchProfile `yaml:"profiles,omitempty"`

	// Defaults contains a search definition applied to all profiles
	// unless overridden in the profile itself.
	Defaults SearchProfile `yaml:"defaults,omitempty"`
}

// GetProfile returns the search profile with the given name, merged over
// the file's defaults. The second return value reports whether the name
// exists in the file.
func (cf *File) GetProfile(name string) (SearchProfile, bool) {
	p, ok := cf.Profiles[name]
	if !ok {
		return SearchProfile{}, false
	}

	// Start with defaults, override with profile-specific values
	result := cf.Defaults
	if p.Label != "" {
		result.Label = p.Label
	}
	if p.Specialty != "" {
		result.Specialty = p.Specialty
	}
	if p.ListingURI != "" {
		result.ListingURI = p.ListingURI
	}
	if p.MaxPages != 0 {
		result.MaxPages = p.MaxPages
	}
	if p.Delay != 0 {
		result.Delay = p.Delay
	}
	return result, true
}
