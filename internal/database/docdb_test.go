package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/eg467/docdirscan/internal/model"
)

func openTestDB(t *testing.T) *DocDB {
	t.Helper()
	d, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestOpenRequiresExistingDatabase(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.CreateIfNotExists = false
	if _, err := Open(t.TempDir(), opts); err == nil {
		t.Fatal("Open() succeeded against a missing database file")
	}
}

func TestOpenSeedsLookupTables(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	ctx := context.Background()

	// Seeded provider groups resolve without creating new rows.
	for _, name := range []string{"Hospital", "CRNP", "Doctor"} {
		_, created, err := d.UpsertName(ctx, TableProviderGroups, name)
		if err != nil {
			t.Fatalf("UpsertName(%q) error = %v", name, err)
		}
		if created {
			t.Errorf("provider group %q was not seeded", name)
		}
	}

	// One experience type per defined level, carrying its ordinal.
	for _, level := range model.ExperienceLevels() {
		_, created, err := d.UpsertExperienceType(ctx, level.String(), level)
		if err != nil {
			t.Fatalf("UpsertExperienceType(%q) error = %v", level, err)
		}
		if created {
			t.Errorf("experience type %q was not seeded", level)
		}
	}

	var storedLevel int
	err := d.db.QueryRowContext(ctx,
		"SELECT experience_level FROM experience_types WHERE name = ?",
		model.LevelResidency.String()).Scan(&storedLevel)
	if err != nil {
		t.Fatalf("querying seeded level: %v", err)
	}
	if storedLevel != int(model.LevelResidency) {
		t.Errorf("seeded Residency level = %d, want %d", storedLevel, int(model.LevelResidency))
	}
}

func TestUpsertNameCaselessIdentity(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	ctx := context.Background()

	first, created, err := d.UpsertName(ctx, TableExperienceInstitutions, " Johns Hopkins ")
	if err != nil {
		t.Fatalf("UpsertName() error = %v", err)
	}
	if !created {
		t.Error("first sighting did not create a row")
	}

	second, created, err := d.UpsertName(ctx, TableExperienceInstitutions, "JOHNS HOPKINS")
	if err != nil {
		t.Fatalf("UpsertName() error = %v", err)
	}
	if created {
		t.Error("caseless duplicate created a second row")
	}
	if first != second {
		t.Errorf("ids differ: %d vs %d", first, second)
	}

	// The stored name keeps the first sighting's casing, trimmed.
	var stored string
	if err := d.db.QueryRowContext(ctx,
		"SELECT name FROM experience_institutions WHERE id = ?", first).Scan(&stored); err != nil {
		t.Fatal(err)
	}
	if stored != "Johns Hopkins" {
		t.Errorf("stored name = %q, want %q", stored, "Johns Hopkins")
	}
}

func TestUpsertNameRejections(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		table string
		value string
	}{
		{name: "unknown table", table: "ibx_profiles", value: "x"},
		{name: "empty name", table: TableSpecialties, value: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := d.UpsertName(ctx, tt.table, tt.value); err == nil {
				t.Errorf("UpsertName(%q, %q) succeeded", tt.table, tt.value)
			}
		})
	}
}

func TestUpsertLocationTupleIdentity(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	ctx := context.Background()

	base := model.Location{
		Name:  "Heart Institute",
		Phone: "610-555-0100",
		Address: &model.Address{
			Line1: "1200 Cedar Crest Blvd",
			City:  "Allentown",
			State: "PA",
			Zip:   "18103",
		},
	}

	first, created, err := d.UpsertLocation(ctx, base)
	if err != nil {
		t.Fatalf("UpsertLocation() error = %v", err)
	}
	if !created {
		t.Error("first sighting did not create a row")
	}

	// Cosmetic differences resolve to the same row.
	recased := base
	recased.Name = "  HEART INSTITUTE "
	recased.Phone = "different phone, ignored for identity"
	second, created, err := d.UpsertLocation(ctx, recased)
	if err != nil {
		t.Fatalf("UpsertLocation() error = %v", err)
	}
	if created || first != second {
		t.Errorf("recased location got id %d (created=%v), want %d", second, created, first)
	}

	// A different street is a different location.
	moved := base
	moved.Address = &model.Address{Line1: "17th Street", City: "Allentown", State: "PA", Zip: "18104"}
	third, created, err := d.UpsertLocation(ctx, moved)
	if err != nil {
		t.Fatalf("UpsertLocation() error = %v", err)
	}
	if !created || third == first {
		t.Errorf("moved location got id %d (created=%v), want a new row", third, created)
	}
}

func TestAddExperienceNeverDeduplicates(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	ctx := context.Background()

	exp := model.Experience{
		Type:        "MD",
		Institution: "Temple University",
		Level:       model.LevelEducation,
	}

	first, err := d.AddExperience(ctx, exp)
	if err != nil {
		t.Fatalf("AddExperience() error = %v", err)
	}
	second, err := d.AddExperience(ctx, exp)
	if err != nil {
		t.Fatalf("AddExperience() error = %v", err)
	}
	if first == second {
		t.Error("identical history entries shared a row; want one row per occurrence")
	}

	var institutions int
	if err := d.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM experience_institutions WHERE name = ?",
		"Temple University").Scan(&institutions); err != nil {
		t.Fatal(err)
	}
	if institutions != 1 {
		t.Errorf("institution rows = %d, want 1 shared row", institutions)
	}
}

func TestStartSearchCreatesImageDir(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	session, err := d.StartSearch(context.Background(), "cardiology run #1", "https://example.org/search", "Cardiology")
	if err != nil {
		t.Fatalf("StartSearch() error = %v", err)
	}
	if session.ID == 0 {
		t.Error("session has zero id")
	}
	if session.Specialty != "Cardiology" {
		t.Errorf("Specialty = %q, want %q", session.Specialty, "Cardiology")
	}
	info, err := os.Stat(session.ImageDir)
	if err != nil || !info.IsDir() {
		t.Errorf("ImageDir %q is not a directory (err=%v)", session.ImageDir, err)
	}
	if filepath.Dir(session.ImageDir) != filepath.Join(d.dataDir, imageDirName) {
		t.Errorf("ImageDir %q is outside the data directory's image root", session.ImageDir)
	}
}

func TestResetDestroysData(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	ctx := context.Background()

	if _, _, err := d.UpsertName(ctx, TableSpecialties, "Cardiology"); err != nil {
		t.Fatal(err)
	}
	if err := d.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	var count int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM specialties").Scan(&count); err != nil {
		t.Fatalf("querying after reset: %v", err)
	}
	if count != 0 {
		t.Errorf("specialties rows after reset = %d, want 0", count)
	}

	// Seeds are restored.
	_, created, err := d.UpsertName(ctx, TableProviderGroups, "Doctor")
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Error("provider groups were not reseeded")
	}
}
