package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eg467/docdirscan/internal/model"
)

// AddIbxProfile persists one insurance-network profile.
//
// The profile row and its sub-entity links are created only the first time
// the directory identifier is seen; a known profile is never rewritten,
// whatever the new sighting carries. A session link row is added on every
// sighting when session is non-nil, so one profile accumulates links to
// every run that returned it. Returns whether a new profile row was created.
func (d *DocDB) AddIbxProfile(ctx context.Context, session *model.SearchSession, profile *model.IbxProfile) (bool, error) {
	if profile == nil {
		return false, fmt.Errorf("nil profile")
	}
	if profile.ID == 0 {
		return false, fmt.Errorf("profile %q has no directory identifier", profile.FullName)
	}

	var existingID int64
	err := d.db.QueryRowContext(ctx,
		"SELECT id FROM ibx_profiles WHERE id = ?", profile.ID).Scan(&existingID)
	exists := err == nil
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to look up profile %d: %w", profile.ID, err)
	}

	if !exists {
		_, err := NewInsert("ibx_profiles").
			Set("id", profile.ID).
			Set("first_name", profile.FirstName).
			Set("middle_name", profile.MiddleName).
			Set("last_name", profile.LastName).
			Set("full_name", profile.FullName).
			Set("gender", profile.Gender).
			Set("board_certified", profile.BoardCertified).
			Set("image_uri", profile.ImageURI).
			Exec(ctx, d.db)
		if err != nil {
			return false, err
		}

		for _, exp := range profile.Education {
			if err := d.linkExperience(ctx, "ibx_profile_experiences", "ibx_profile_id", profile.ID, exp); err != nil {
				return false, err
			}
		}
		for _, exp := range profile.Residencies {
			if err := d.linkExperience(ctx, "ibx_profile_experiences", "ibx_profile_id", profile.ID, exp); err != nil {
				return false, err
			}
		}
		for table, locations := range map[string][]model.Location{
			"ibx_profile_locations":             profile.Locations,
			"ibx_profile_group_affiliations":    profile.GroupAffiliations,
			"ibx_profile_hospital_affiliations": profile.HospitalAffiliations,
		} {
			for _, loc := range locations {
				if err := d.linkLocation(ctx, table, "ibx_profile_id", profile.ID, loc); err != nil {
					return false, err
				}
			}
		}
	}

	if session != nil {
		_, err := NewInsert("ibx_profile_searches").OrIgnore().
			Set("ibx_profile_id", profile.ID).
			Set("search_id", session.ID).
			Exec(ctx, d.db)
		if err != nil {
			return false, err
		}
	}
	return !exists, nil
}

// AddLvhnProfile persists one hospital-network profile, keyed by its
// detail-page URI. Semantics mirror AddIbxProfile: the row, sub-entities,
// and the headshot download happen on first sighting only; a known profile
// gains nothing but a new session link. A profile whose detail fetch failed
// is still persisted with its failure message so the run is auditable.
func (d *DocDB) AddLvhnProfile(ctx context.Context, session *model.SearchSession, profile *model.LvhnProfile) (bool, error) {
	if profile == nil || profile.Summary == nil {
		return false, fmt.Errorf("nil profile")
	}
	summary := profile.Summary
	if summary.DetailsURI == nil {
		return false, fmt.Errorf("profile %q has no details URI", summary.Name)
	}
	detailsURI := summary.DetailsURI.String()

	imageURI := ""
	if summary.ImageURI != nil {
		imageURI = summary.ImageURI.String()
	}

	var existingID int64
	err := d.db.QueryRowContext(ctx,
		"SELECT id FROM lvhn_profiles WHERE details_uri = ?", detailsURI).Scan(&existingID)
	exists := err == nil
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to look up profile %q: %w", detailsURI, err)
	}

	bio, scholarly := "", ""
	if profile.Details != nil {
		bio = profile.Details.Bio
		if profile.Details.ScholarlyWorksURI != nil {
			scholarly = profile.Details.ScholarlyWorksURI.String()
		}
	}

	var profileID int64
	if exists {
		profileID = existingID
	} else {
		result, err := NewInsert("lvhn_profiles").
			Set("details_uri", detailsURI).
			Set("name", summary.Name).
			Set("image_uri", imageURI).
			Set("local_image_path", d.downloadHeadshot(ctx, session, summary)).
			Set("accepting_new_patients", summary.AcceptingNewPatients).
			Set("bio", bio).
			Set("scholarly_works_uri", scholarly).
			Set("error", profile.Err).
			Exec(ctx, d.db)
		if err != nil {
			return false, err
		}
		profileID, err = result.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("failed to read inserted profile id: %w", err)
		}

		for table, names := range map[string][]string{
			"lvhn_profile_specialties":    summary.Specialties,
			"lvhn_profile_areas_of_focus": summary.AreasOfFocus,
		} {
			if err := d.linkNames(ctx, table, profileID, names); err != nil {
				return false, err
			}
		}
		for _, loc := range summary.Locations {
			if err := d.linkLocation(ctx, "lvhn_profile_locations", "lvhn_profile_id", profileID, loc); err != nil {
				return false, err
			}
		}

		if details := profile.Details; details != nil {
			for table, names := range map[string][]string{
				"lvhn_profile_conditions_treated": details.ConditionsTreated,
				"lvhn_profile_services_offered":   details.ServicesOffered,
			} {
				if err := d.linkNames(ctx, table, profileID, names); err != nil {
					return false, err
				}
			}
			for _, group := range [][]model.Experience{details.Degrees, details.Training, details.Certifications} {
				for _, exp := range group {
					if err := d.linkExperience(ctx, "lvhn_profile_experiences", "lvhn_profile_id", profileID, exp); err != nil {
						return false, err
					}
				}
			}
			for _, rating := range details.Ratings {
				ratingID, err := d.AddRating(ctx, rating)
				if err != nil {
					return false, err
				}
				_, err = NewInsert("lvhn_profile_ratings").OrIgnore().
					Set("lvhn_profile_id", profileID).
					Set("rating_id", ratingID).
					Exec(ctx, d.db)
				if err != nil {
					return false, err
				}
			}
		}
	}

	if session != nil {
		_, err := NewInsert("lvhn_profile_searches").OrIgnore().
			Set("lvhn_profile_id", profileID).
			Set("search_id", session.ID).
			Exec(ctx, d.db)
		if err != nil {
			return false, err
		}
	}
	return !exists, nil
}

// linkNameTables maps link tables to the lookup table and id column they
// reference.
var linkNameTables = map[string]struct {
	lookup string
	column string
}{
	"lvhn_profile_specialties":        {lookup: TableSpecialties, column: "specialty_id"},
	"lvhn_profile_areas_of_focus":     {lookup: TableAreasOfFocus, column: "area_of_focus_id"},
	"lvhn_profile_conditions_treated": {lookup: TableConditionsTreated, column: "condition_treated_id"},
	"lvhn_profile_services_offered":   {lookup: TableServicesOffered, column: "service_offered_id"},
}

// linkNames upserts each name into the link table's lookup and adds a link
// row per distinct name.
func (d *DocDB) linkNames(ctx context.Context, linkTable string, profileID int64, names []string) error {
	ref, ok := linkNameTables[linkTable]
	if !ok {
		return fmt.Errorf("%q is not a name link table", linkTable)
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		nameID, _, err := d.UpsertName(ctx, ref.lookup, name)
		if err != nil {
			return err
		}
		_, err = NewInsert(linkTable).OrIgnore().
			Set("lvhn_profile_id", profileID).
			Set(ref.column, nameID).
			Exec(ctx, d.db)
		if err != nil {
			return err
		}
	}
	return nil
}

// linkExperience inserts a history row and links it to the owning profile.
func (d *DocDB) linkExperience(ctx context.Context, linkTable, profileColumn string, profileID int64, exp model.Experience) error {
	expID, err := d.AddExperience(ctx, exp)
	if err != nil {
		return err
	}
	_, err = NewInsert(linkTable).OrIgnore().
		Set(profileColumn, profileID).
		Set("experience_id", expID).
		Exec(ctx, d.db)
	return err
}

// linkLocation upserts the location and links it to the owning profile.
// Locations with neither a name nor a street address carry no identity and
// are skipped.
func (d *DocDB) linkLocation(ctx context.Context, linkTable, profileColumn string, profileID int64, loc model.Location) error {
	key := loc.Key()
	if key.Name == "" && key.Street1 == "" {
		return nil
	}
	locationID, _, err := d.UpsertLocation(ctx, loc)
	if err != nil {
		return err
	}
	_, err = NewInsert(linkTable).OrIgnore().
		Set(profileColumn, profileID).
		Set("location_id", locationID).
		Exec(ctx, d.db)
	return err
}

// downloadHeadshot fetches the summary's headshot into the session image
// directory, returning the local path or "" when there is nothing to
// download. A failed download is logged and treated as a missing image;
// it never fails the profile insert.
func (d *DocDB) downloadHeadshot(ctx context.Context, session *model.SearchSession, summary *model.LvhnSummary) string {
	if d.images == nil || session == nil || session.ImageDir == "" || summary.ImageURI == nil {
		return ""
	}
	path, err := d.images.DownloadImage(ctx, summary.ImageURI.String(), session.ImageDir)
	if err != nil {
		d.logger.WarnContext(ctx, "headshot download failed",
			"profile", summary.Name, "uri", summary.ImageURI.String(), "error", err)
		return ""
	}
	return path
}
