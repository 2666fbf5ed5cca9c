package model

import (
	"fmt"
	"strings"
)

// Address is a postal address attached to a practice location.
// All fields are optional; missing leaves are stored as empty strings so the
// record can always be formatted and persisted without nil checks.
type Address struct {
	// Line1 is the primary street line.
	Line1 string `json:"line1,omitempty"`

	// Line2 is the secondary street line (suite, floor, etc.).
	Line2 string `json:"line2,omitempty"`

	// City is the city or locality name.
	City string `json:"city,omitempty"`

	// State is the state or administrative-area code.
	State string `json:"state,omitempty"`

	// Zip is the postal code.
	Zip string `json:"zip,omitempty"`

	// Country is the country name, when the source supplies one.
	Country string `json:"country,omitempty"`

	// County is the county name, when the source supplies one.
	County string `json:"county,omitempty"`
}

// String formats the address for spreadsheet cells and log output.
// Empty lines are elided so partially-populated addresses stay readable.
func (a Address) String() string {
	lines := make([]string, 0, 5)
	for _, l := range []string{a.Line1, a.Line2} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if a.City != "" || a.State != "" || a.Zip != "" {
		locality := fmt.Sprintf("%s %s", a.State, a.Zip)
		if a.City != "" {
			locality = a.City + ", " + locality
		}
		lines = append(lines, strings.TrimSpace(locality))
	}
	if a.County != "" {
		lines = append(lines, a.County+" County")
	}
	if a.Country != "" {
		lines = append(lines, a.Country)
	}
	return strings.Join(lines, "\n")
}
