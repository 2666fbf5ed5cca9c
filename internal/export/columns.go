package export

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/eg467/docdirscan/internal/model"
)

// IbxColumns is the spreadsheet layout for insurance-network profiles.
func IbxColumns() []Column[*model.IbxProfile] {
	return []Column[*model.IbxProfile]{
		{Label: "ID", Extract: func(p *model.IbxProfile) string { return strconv.FormatInt(p.ID, 10) }},
		{Label: "Name", Extract: func(p *model.IbxProfile) string { return p.FullName }},
		{Label: "First Name", Extract: func(p *model.IbxProfile) string { return p.FirstName }},
		{Label: "Middle Name", Extract: func(p *model.IbxProfile) string { return p.MiddleName }},
		{Label: "Last Name", Extract: func(p *model.IbxProfile) string { return p.LastName }},
		{Label: "Gender", Extract: func(p *model.IbxProfile) string { return p.Gender }},
		{Label: "Board Certified", Extract: func(p *model.IbxProfile) string { return p.BoardCertified }},
		{Label: "Education", Extract: func(p *model.IbxProfile) string {
			return joinLines(p.Education, model.Experience.String)
		}},
		{Label: "Residencies", Extract: func(p *model.IbxProfile) string {
			return joinLines(p.Residencies, model.Experience.String)
		}},
		{Label: "Locations", Extract: func(p *model.IbxProfile) string {
			return joinLines(p.Locations, model.Location.String)
		}},
		{Label: "Group Affiliations", Extract: func(p *model.IbxProfile) string {
			return joinLines(p.GroupAffiliations, model.Location.String)
		}},
		{Label: "Hospital Affiliations", Extract: func(p *model.IbxProfile) string {
			return joinLines(p.HospitalAffiliations, model.Location.String)
		}},
		{Label: "Image URI", Extract: func(p *model.IbxProfile) string { return p.ImageURI }},
	}
}

// LvhnColumns is the spreadsheet layout for hospital-network profiles.
func LvhnColumns() []Column[*model.LvhnProfile] {
	return []Column[*model.LvhnProfile]{
		{Label: "Name", Extract: func(p *model.LvhnProfile) string { return p.Summary.Name }},
		{Label: "Details URI", Extract: func(p *model.LvhnProfile) string {
			return uriString(p.Summary.DetailsURI)
		}},
		{Label: "Accepting New Patients", Extract: func(p *model.LvhnProfile) string {
			if p.Summary.AcceptingNewPatients {
				return "Yes"
			}
			return "No"
		}},
		{Label: "Specialties", Extract: func(p *model.LvhnProfile) string {
			return joinLines(p.Summary.Specialties, stringIdentity)
		}},
		{Label: "Areas of Focus", Extract: func(p *model.LvhnProfile) string {
			return joinLines(p.Summary.AreasOfFocus, stringIdentity)
		}},
		{Label: "Locations", Extract: func(p *model.LvhnProfile) string {
			return joinLines(p.Summary.Locations, model.Location.String)
		}},
		{Label: "Bio", Extract: func(p *model.LvhnProfile) string {
			if p.Details == nil {
				return ""
			}
			return p.Details.Bio
		}},
		{Label: "Degrees", Extract: detailExperiences(func(d *model.LvhnDetails) []model.Experience { return d.Degrees })},
		{Label: "Training", Extract: detailExperiences(func(d *model.LvhnDetails) []model.Experience { return d.Training })},
		{Label: "Certifications", Extract: detailExperiences(func(d *model.LvhnDetails) []model.Experience { return d.Certifications })},
		{Label: "Scholarly Works", Extract: func(p *model.LvhnProfile) string {
			if p.Details == nil {
				return ""
			}
			return uriString(p.Details.ScholarlyWorksURI)
		}},
		{Label: "Conditions Treated", Extract: func(p *model.LvhnProfile) string {
			if p.Details == nil {
				return ""
			}
			return joinLines(p.Details.ConditionsTreated, stringIdentity)
		}},
		{Label: "Services Offered", Extract: func(p *model.LvhnProfile) string {
			if p.Details == nil {
				return ""
			}
			return joinLines(p.Details.ServicesOffered, stringIdentity)
		}},
		{Label: "Ratings", Extract: func(p *model.LvhnProfile) string {
			if p.Details == nil {
				return ""
			}
			return joinLines(p.Details.Ratings, formatRating)
		}},
		{Label: "Error", Extract: func(p *model.LvhnProfile) string { return p.Err }},
	}
}

// detailExperiences adapts a details-field selector into an extractor that
// tolerates profiles whose details fetch failed.
func detailExperiences(field func(*model.LvhnDetails) []model.Experience) func(*model.LvhnProfile) string {
	return func(p *model.LvhnProfile) string {
		if p.Details == nil {
			return ""
		}
		return joinLines(field(p.Details), model.Experience.String)
	}
}

// formatRating renders one rating as "Category: 4.8/5 (132)".
func formatRating(r model.Rating) string {
	s := fmt.Sprintf("%s: %g/%d", r.Category, r.Value, r.Max)
	if r.Count > 0 {
		s = fmt.Sprintf("%s (%d)", s, r.Count)
	}
	return s
}

func stringIdentity(s string) string { return s }

func uriString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}
