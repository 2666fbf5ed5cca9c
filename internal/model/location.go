package model

import (
	"fmt"
	"strings"
)

// Location is a practice location, hospital, or group affiliation.
// The same physical location is referenced by many profiles, so locations are
// deduplicated on a normalized composite key rather than stored per profile.
type Location struct {
	// Name is the display name of the location.
	Name string `json:"name,omitempty"`

	// Phone is the contact phone number as printed by the source.
	Phone string `json:"phone,omitempty"`

	// Latitude and Longitude are the geographic coordinates.
	// Zero when the source does not publish coordinates.
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	// Address is the postal address. Nil when the source omits it entirely.
	Address *Address `json:"address,omitempty"`

	// InNetwork reports whether the location is in the insurance network.
	// Nil when the source does not carry the flag (hospital-network listings).
	InNetwork *bool `json:"in_network,omitempty"`
}

// LocationKey is the identity of a location for deduplication purposes:
// the normalized (name, street1, street2, city, state, zip) tuple.
// Two locations with equal keys refer to the same row in storage.
type LocationKey struct {
	Name    string
	Street1 string
	Street2 string
	City    string
	State   string
	Zip     string
}

// Key derives the deduplication key for the location. Every component is
// whitespace-trimmed and case-folded so cosmetic differences between source
// pages do not create duplicate rows.
func (l Location) Key() LocationKey {
	var a Address
	if l.Address != nil {
		a = *l.Address
	}
	return LocationKey{
		Name:    NormalizeName(l.Name),
		Street1: NormalizeName(a.Line1),
		Street2: NormalizeName(a.Line2),
		City:    NormalizeName(a.City),
		State:   NormalizeName(a.State),
		Zip:     NormalizeName(a.Zip),
	}
}

// String formats the location for spreadsheet cells and log output.
func (l Location) String() string {
	var sb strings.Builder
	sb.WriteString(l.Name)
	if l.Address != nil {
		if addr := l.Address.String(); addr != "" {
			fmt.Fprintf(&sb, " (%s)", strings.ReplaceAll(addr, "\n", ", "))
		}
	}
	if l.Phone != "" {
		fmt.Fprintf(&sb, " (%s)", l.Phone)
	}
	return strings.TrimSpace(sb.String())
}
