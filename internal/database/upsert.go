package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eg467/docdirscan/internal/model"
)

// Name lookup tables accepted by UpsertName. Using constants keeps table
// identifiers out of caller-supplied strings.
const (
	TableExperienceInstitutions = "experience_institutions"
	TableExperienceTypes        = "experience_types"
	TableSpecialties            = "specialties"
	TableAreasOfFocus           = "areas_of_focus"
	TableConditionsTreated      = "conditions_treated"
	TableServicesOffered        = "services_offered"
	TableRatingsSources         = "ratings_sources"
	TableRatingsCategories      = "ratings_categories"
	TableProviderGroups         = "provider_groups"
)

// nameLookupTables is the allowlist of tables UpsertName may touch.
var nameLookupTables = map[string]bool{
	TableExperienceInstitutions: true,
	TableExperienceTypes:        true,
	TableSpecialties:            true,
	TableAreasOfFocus:           true,
	TableConditionsTreated:      true,
	TableServicesOffered:        true,
	TableRatingsSources:         true,
	TableRatingsCategories:      true,
	TableProviderGroups:         true,
}

// UpsertName finds or creates the row in a name lookup table whose name
// matches caselessly after trimming, returning its id and whether a row was
// created. " Johns Hopkins " and "JOHNS HOPKINS" resolve to the same row.
func (d *DocDB) UpsertName(ctx context.Context, table, name string) (int64, bool, error) {
	if !nameLookupTables[table] {
		return 0, false, fmt.Errorf("%q is not a name lookup table", table)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false, fmt.Errorf("cannot upsert an empty name into %s", table)
	}

	query := fmt.Sprintf("SELECT id FROM %s WHERE UPPER(TRIM(name)) = UPPER(TRIM(?))", table)
	var id int64
	err := d.db.QueryRowContext(ctx, query, name).Scan(&id)
	switch {
	case err == nil:
		return id, false, nil
	case err != sql.ErrNoRows:
		return 0, false, fmt.Errorf("failed to look up %q in %s: %w", name, table, err)
	}

	result, err := NewInsert(table).Set("name", name).Exec(ctx, d.db)
	if err != nil {
		return 0, false, err
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read inserted id from %s: %w", table, err)
	}
	return id, true, nil
}

// UpsertExperienceType finds or creates an experience type row, recording
// the career-stage level when the row is first created. An existing row's
// level is left untouched.
func (d *DocDB) UpsertExperienceType(ctx context.Context, name string, level model.ExperienceLevel) (int64, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false, fmt.Errorf("cannot upsert an empty experience type")
	}

	var id int64
	err := d.db.QueryRowContext(ctx,
		"SELECT id FROM experience_types WHERE UPPER(TRIM(name)) = UPPER(TRIM(?))", name).Scan(&id)
	switch {
	case err == nil:
		return id, false, nil
	case err != sql.ErrNoRows:
		return 0, false, fmt.Errorf("failed to look up experience type %q: %w", name, err)
	}

	result, err := NewInsert(TableExperienceTypes).
		Set("name", name).
		Set("experience_level", int(level)).
		Exec(ctx, d.db)
	if err != nil {
		return 0, false, err
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read inserted experience type id: %w", err)
	}
	return id, true, nil
}

// UpsertLocation finds or creates the location row matching the caseless
// (name, street1, street2, city, state, zip) tuple, returning its id and
// whether a row was created. Phone, coordinates, and the in-network flag are
// recorded on creation only.
func (d *DocDB) UpsertLocation(ctx context.Context, loc model.Location) (int64, bool, error) {
	var addr model.Address
	if loc.Address != nil {
		addr = *loc.Address
	}

	const query = `
	SELECT id FROM locations
	WHERE UPPER(TRIM(name)) = UPPER(TRIM(?))
	  AND UPPER(TRIM(street1)) = UPPER(TRIM(?))
	  AND UPPER(TRIM(street2)) = UPPER(TRIM(?))
	  AND UPPER(TRIM(city)) = UPPER(TRIM(?))
	  AND UPPER(TRIM(state)) = UPPER(TRIM(?))
	  AND UPPER(TRIM(zip)) = UPPER(TRIM(?))
	`
	var id int64
	err := d.db.QueryRowContext(ctx, query,
		loc.Name, addr.Line1, addr.Line2, addr.City, addr.State, addr.Zip).Scan(&id)
	switch {
	case err == nil:
		return id, false, nil
	case err != sql.ErrNoRows:
		return 0, false, fmt.Errorf("failed to look up location %q: %w", loc.Name, err)
	}

	insert := NewInsert("locations").
		Set("name", strings.TrimSpace(loc.Name)).
		Set("phone", strings.TrimSpace(loc.Phone)).
		Set("street1", strings.TrimSpace(addr.Line1)).
		Set("street2", strings.TrimSpace(addr.Line2)).
		Set("city", strings.TrimSpace(addr.City)).
		Set("state", strings.TrimSpace(addr.State)).
		Set("zip", strings.TrimSpace(addr.Zip)).
		Set("country", strings.TrimSpace(addr.Country)).
		Set("latitude", loc.Latitude).
		Set("longitude", loc.Longitude)
	if loc.InNetwork != nil {
		insert.Set("in_network", *loc.InNetwork)
	}

	result, err := insert.Exec(ctx, d.db)
	if err != nil {
		return 0, false, err
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read inserted location id: %w", err)
	}
	return id, true, nil
}

// AddExperience records one history entry: the type and institution are
// upserted as shared lookups, but the history row itself is always inserted.
// The same degree appearing on two profiles yields two history rows sharing
// one institution row.
func (d *DocDB) AddExperience(ctx context.Context, exp model.Experience) (int64, error) {
	typeName := strings.TrimSpace(exp.Type)
	if typeName == "" {
		typeName = exp.Level.String()
	}
	typeID, _, err := d.UpsertExperienceType(ctx, typeName, exp.Level)
	if err != nil {
		return 0, err
	}

	var institutionID any
	if strings.TrimSpace(exp.Institution) != "" {
		id, _, err := d.UpsertName(ctx, TableExperienceInstitutions, exp.Institution)
		if err != nil {
			return 0, err
		}
		institutionID = id
	}

	insert := NewInsert("experience_histories").
		Set("experience_type_id", typeID).
		Set("experience_institution_id", institutionID).
		Set("details", strings.TrimSpace(exp.Details))
	if exp.Year != nil {
		insert.Set("year", *exp.Year)
	}

	result, err := insert.Exec(ctx, d.db)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted history id: %w", err)
	}
	return id, nil
}

// AddRating records one rating row, upserting the source and category
// lookups it references. Rating rows are never deduplicated.
func (d *DocDB) AddRating(ctx context.Context, rating model.Rating) (int64, error) {
	sourceID, _, err := d.UpsertName(ctx, TableRatingsSources, rating.Source.String())
	if err != nil {
		return 0, err
	}
	category := strings.TrimSpace(rating.Category)
	if category == "" {
		category = "Overall"
	}
	categoryID, _, err := d.UpsertName(ctx, TableRatingsCategories, category)
	if err != nil {
		return 0, err
	}

	result, err := NewInsert("ratings").
		Set("ratings_source_id", sourceID).
		Set("ratings_category_id", categoryID).
		Set("value", rating.Value).
		Set("max", rating.Max).
		Set("count", rating.Count).
		Exec(ctx, d.db)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted rating id: %w", err)
	}
	return id, nil
}
