package ibx

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/eg467/docdirscan/internal/model"
)

// Attribute keys used by the profile document. The backend stores most
// profile data in a single key/value attribute array rather than dedicated
// fields; keys are matched case-insensitively.
const (
	attrGender               = "GENDER"
	attrBoardCertification   = "BOARD_CERTIFICATION"
	attrEducation            = "EDUCATION"
	attrGroupAffiliations    = "GROUP_AFFILIATIONS"
	attrHospitalAffiliations = "HOSPITAL_AFFILIATIONS"
)

// educationCodeResidency is the category code that routes an education entry
// into the Residencies list instead of Education.
const educationCodeResidency = "Residency"

// profileDoc mirrors the top-level shape of a profile JSON document.
// Every leaf is optional; absent properties decode to zero values.
type profileDoc struct {
	ID        int64  `json:"id"`
	PhotoPath string `json:"photoPath"`
	Provider  struct {
		FirstName  string `json:"firstName"`
		MiddleName string `json:"middleName"`
		LastName   string `json:"lastName"`
		FullName   string `json:"fullName"`
	} `json:"provider"`
	Attributes []attributeDoc `json:"attributes"`
	Locations  []locationDoc  `json:"locations"`
}

// attributeDoc is one entry of the document's attribute array.
// Value is left raw because its shape depends on the key.
type attributeDoc struct {
	Key   string          `json:"key"`
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// educationDoc is one entry of the EDUCATION attribute value.
type educationDoc struct {
	Code        string `json:"code"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// boardCertificationDoc is the BOARD_CERTIFICATION attribute value.
type boardCertificationDoc struct {
	BoardCertification []string `json:"boardCertification"`
}

// locationDoc is the wire shape of a location in either the top-level
// locations array or an affiliation attribute value.
type locationDoc struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	InNetwork *bool   `json:"inNetwork"`
	Address   *struct {
		Line1 string `json:"line1"`
		Line2 string `json:"line2"`
		City  string `json:"city"`
		State string `json:"state"`
		Zip   string `json:"zip"`
	} `json:"address"`
}

// ParseProfile parses one profile JSON document into a profile record.
// A document that is not valid JSON is an error and fails that profile;
// anything less (missing attributes, malformed attribute values) degrades to
// empty fields.
func ParseProfile(jsonText string) (*model.IbxProfile, error) {
	var doc profileDoc
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return nil, fmt.Errorf("malformed profile document: %w", err)
	}

	attrs := attributeTable(doc.Attributes)
	education, residencies := parseEducation(attrs.raw(attrEducation))

	return &model.IbxProfile{
		ID:                   doc.ID,
		FirstName:            strings.TrimSpace(doc.Provider.FirstName),
		MiddleName:           strings.TrimSpace(doc.Provider.MiddleName),
		LastName:             strings.TrimSpace(doc.Provider.LastName),
		FullName:             strings.TrimSpace(doc.Provider.FullName),
		Gender:               attrs.str(attrGender),
		BoardCertified:       parseBoardCertification(attrs.raw(attrBoardCertification)),
		Education:            education,
		Residencies:          residencies,
		ImageURI:             strings.TrimSpace(doc.PhotoPath),
		GroupAffiliations:    parseLocations(attrs.raw(attrGroupAffiliations)),
		HospitalAffiliations: parseLocations(attrs.raw(attrHospitalAffiliations)),
		Locations:            convertLocations(doc.Locations),
	}, nil
}

// attributes indexes the attribute array by upper-cased key.
type attributes map[string]json.RawMessage

func attributeTable(docs []attributeDoc) attributes {
	attrs := make(attributes, len(docs))
	for _, d := range docs {
		if d.Key == "" {
			continue
		}
		attrs[strings.ToUpper(d.Key)] = d.Value
	}
	return attrs
}

// raw returns the attribute value for key, or nil when absent.
func (a attributes) raw(key string) json.RawMessage {
	return a[strings.ToUpper(key)]
}

// str decodes the attribute value for key as a trimmed string.
// Any decode failure yields "".
func (a attributes) str(key string) string {
	raw := a.raw(key)
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// parseBoardCertification joins the certification list with ", ".
func parseBoardCertification(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var doc boardCertificationDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}
	return strings.Join(doc.BoardCertification, ", ")
}

// parseEducation splits the EDUCATION attribute by category code: entries
// coded "Residency" (case-insensitive) go to the residency list, all others
// to the education list. Duplicate entries within a list are collapsed.
func parseEducation(raw json.RawMessage) (education, residencies []model.Experience) {
	if raw == nil {
		return nil, nil
	}
	var docs []educationDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, nil
	}

	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		isResidency := strings.EqualFold(d.Code, educationCodeResidency)
		exp := model.Experience{
			Type:        strings.TrimSpace(d.Code),
			Institution: strings.TrimSpace(d.Institution),
			Level:       model.LevelEducation,
		}
		if isResidency {
			exp.Level = model.LevelResidency
		}
		if y, err := strconv.Atoi(strings.TrimSpace(d.Year)); err == nil {
			exp.Year = &y
		}

		if seen[exp.Key()] {
			continue
		}
		seen[exp.Key()] = true

		if isResidency {
			residencies = append(residencies, exp)
		} else {
			education = append(education, exp)
		}
	}
	return education, residencies
}

// parseLocations decodes a location array attribute. Entries with neither a
// name nor a street line carry no usable identity and are dropped.
func parseLocations(raw json.RawMessage) []model.Location {
	if raw == nil {
		return nil
	}
	var docs []locationDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil
	}
	return convertLocations(docs)
}

func convertLocations(docs []locationDoc) []model.Location {
	locations := make([]model.Location, 0, len(docs))
	seen := make(map[model.LocationKey]bool, len(docs))
	for _, d := range docs {
		loc := model.Location{
			Name:      strings.TrimSpace(d.Name),
			Phone:     strings.TrimSpace(d.Phone),
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
			InNetwork: d.InNetwork,
		}
		if d.Address != nil {
			loc.Address = &model.Address{
				Line1: strings.TrimSpace(d.Address.Line1),
				Line2: strings.TrimSpace(d.Address.Line2),
				City:  strings.TrimSpace(d.Address.City),
				State: strings.TrimSpace(d.Address.State),
				Zip:   strings.TrimSpace(d.Address.Zip),
			}
		}

		hasStreet := loc.Address != nil && loc.Address.Line1 != ""
		if loc.Name == "" && !hasStreet {
			continue
		}
		if seen[loc.Key()] {
			continue
		}
		seen[loc.Key()] = true
		locations = append(locations, loc)
	}
	if len(locations) == 0 {
		return nil
	}
	return locations
}
