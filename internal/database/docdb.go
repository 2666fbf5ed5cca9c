package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/eg467/docdirscan/internal/fetch"
	"github.com/eg467/docdirscan/internal/model"
)

// dbFileName is the SQLite database file created inside the data directory.
const dbFileName = "docdirscan.db"

// imageDirName is the subdirectory of the data directory that holds
// per-session headshot downloads.
const imageDirName = "images"

// providerGroupSeeds are the provider group rows created on initialization.
var providerGroupSeeds = []string{"Hospital", "CRNP", "Doctor"}

// DocDB provides SQLite-based storage for scraped physician profiles.
//
// Design decision: We use a single database file holding both directory
// sources rather than one file per source. Shared sub-entities (locations,
// institutions) are the whole point of the schema, and they only deduplicate
// across sources when both live in the same file.
type DocDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dataDir is the directory holding the database file and image dirs.
	dataDir string

	// images downloads headshots into session image directories.
	// Nil disables downloads.
	images *fetch.Client

	// logger records non-fatal persistence events such as failed image
	// downloads.
	logger *slog.Logger
}

// Options configures DocDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool

	// ImageClient downloads profile headshots into session image
	// directories. Nil disables image downloads.
	ImageClient *fetch.Client

	// Logger receives non-fatal persistence warnings. Nil uses the
	// default logger.
	Logger *slog.Logger
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a DocDB in the specified data directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dataDir string, opts Options) (*DocDB, error) {
	dbPath := filepath.Join(dataDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating a
	// new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer, and the scraper is strictly
	// sequential anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	d := &DocDB{
		db:      db,
		dataDir: dataDir,
		images:  opts.ImageClient,
		logger:  opts.Logger,
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	ctx := context.Background()
	if opts.EnableWAL {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := d.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	if err := d.seed(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed lookup tables: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *DocDB) Close() error {
	return d.db.Close()
}

// Path returns the path of the underlying database file.
func (d *DocDB) Path() string {
	return filepath.Join(d.dataDir, dbFileName)
}

// Reset destroys all stored data: the connection is closed, the database
// file (and its WAL sidecars) deleted, and a fresh seeded schema created.
func (d *DocDB) Reset(ctx context.Context) error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database before reset: %w", err)
	}

	dbPath := d.Path()
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)
	d.db = db

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := d.createTables(ctx); err != nil {
		return fmt.Errorf("failed to recreate tables: %w", err)
	}
	if err := d.seed(ctx); err != nil {
		return fmt.Errorf("failed to reseed lookup tables: %w", err)
	}
	return nil
}

// createTables creates the database schema if it doesn't exist.
func (d *DocDB) createTables(ctx context.Context) error {
	schema := `
	-- Search sessions: one row per scrape run.
	CREATE TABLE IF NOT EXISTS searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL DEFAULT '',
		uri TEXT NOT NULL DEFAULT '',
		specialty TEXT NOT NULL DEFAULT '',
		image_dir TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Locations are shared across profiles and sources, deduplicated on
	-- the caseless (name, street1, street2, city, state, zip) tuple.
	CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		street1 TEXT NOT NULL DEFAULT '',
		street2 TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		latitude REAL NOT NULL DEFAULT 0,
		longitude REAL NOT NULL DEFAULT 0,
		in_network INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_locations_name ON locations(name);

	-- Name lookup tables, deduplicated on the caseless trimmed name.
	CREATE TABLE IF NOT EXISTS experience_institutions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS experience_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		experience_level INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS specialties (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS areas_of_focus (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS conditions_treated (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS services_offered (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS ratings_sources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS ratings_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS provider_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);

	-- Experience histories are one row per occurrence, never deduplicated;
	-- only the type and institution they reference are shared.
	CREATE TABLE IF NOT EXISTS experience_histories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		experience_type_id INTEGER NOT NULL REFERENCES experience_types(id),
		experience_institution_id INTEGER REFERENCES experience_institutions(id),
		details TEXT NOT NULL DEFAULT '',
		year INTEGER
	);

	-- Ratings are one row per sighting, like histories.
	CREATE TABLE IF NOT EXISTS ratings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ratings_source_id INTEGER NOT NULL REFERENCES ratings_sources(id),
		ratings_category_id INTEGER NOT NULL REFERENCES ratings_categories(id),
		value REAL NOT NULL,
		max INTEGER NOT NULL,
		count INTEGER NOT NULL DEFAULT 0
	);

	-- Insurance-network profiles, keyed by the directory's own identifier.
	CREATE TABLE IF NOT EXISTS ibx_profiles (
		id INTEGER PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		middle_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT '',
		board_certified TEXT NOT NULL DEFAULT '',
		image_uri TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS ibx_profile_searches (
		ibx_profile_id INTEGER NOT NULL REFERENCES ibx_profiles(id) ON DELETE CASCADE,
		search_id INTEGER NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
		PRIMARY KEY (ibx_profile_id, search_id)
	);
	CREATE TABLE IF NOT EXISTS ibx_profile_experiences (
		ibx_profile_id INTEGER NOT NULL REFERENCES ibx_profiles(id) ON DELETE CASCADE,
		experience_id INTEGER NOT NULL REFERENCES experience_histories(id) ON DELETE CASCADE,
		PRIMARY KEY (ibx_profile_id, experience_id)
	);
	CREATE TABLE IF NOT EXISTS ibx_profile_locations (
		ibx_profile_id INTEGER NOT NULL REFERENCES ibx_profiles(id) ON DELETE CASCADE,
		location_id INTEGER NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		PRIMARY KEY (ibx_profile_id, location_id)
	);
	CREATE TABLE IF NOT EXISTS ibx_profile_group_affiliations (
		ibx_profile_id INTEGER NOT NULL REFERENCES ibx_profiles(id) ON DELETE CASCADE,
		location_id INTEGER NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		PRIMARY KEY (ibx_profile_id, location_id)
	);
	CREATE TABLE IF NOT EXISTS ibx_profile_hospital_affiliations (
		ibx_profile_id INTEGER NOT NULL REFERENCES ibx_profiles(id) ON DELETE CASCADE,
		location_id INTEGER NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		PRIMARY KEY (ibx_profile_id, location_id)
	);

	-- Hospital-network profiles, keyed by the detail-page URI.
	CREATE TABLE IF NOT EXISTS lvhn_profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		details_uri TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		image_uri TEXT NOT NULL DEFAULT '',
		local_image_path TEXT NOT NULL DEFAULT '',
		accepting_new_patients INTEGER NOT NULL DEFAULT 0,
		bio TEXT NOT NULL DEFAULT '',
		scholarly_works_uri TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS lvhn_profile_searches (
		lvhn_profile_id INTEGER NOT NULL REFERENCES lvhn_profiles(id) ON DELETE CASCADE,
		search_id INTEGER NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
		PRIMARY KEY (lvhn_profile_id, search_id)
	);
	CREATE TABLE IF NOT EXISTS lvhn_profile_specialties (
		lvhn_profile_id INTEGER NOT NULL REFERENCES lvhn_profiles(id) ON DELETE CASCADE,
		specialty_id INTEGER NOT NULL REFERENCES specialties(id) ON DELETE CASCADE,
		PRIMARY KEY (lvhn_profile_id, specialty_id)
	);
	CREATE TABLE IF NOT EXISTS lvhn_profile_areas_of_focus (
		lvhn_profile_id INTEGER NOT NULL REFERENCES lvhn_profiles(id) ON DELETE CASCADE,
		area_of_focus_id INTEGER NOT NULL REFERENCES areas_of_focus(id) ON DELETE CASCADE,
		PRIMARY KEY (lvhn_profile_id, area_of_focus_id)
	);
	CREATE TABLE IF NOT EXISTS lvhn_profile_conditions_treated (
		lvhn_profile_id INTEGER NOT NULL REFERENCES lvhn_profiles(id) ON DELETE CASCADE,
		condition_treated_id INTEGER NOT NULL REFERENCES conditions_treated(id) ON DELETE CASCADE,
		PRIMARY KEY (lvhn_profile_id, condition_treated_id)
	);
	CREATE TABLE IF NOT EXISTS lvhn_profile_services_offered (
		lvhn_profile_id INTEGER NOT NULL REFERENCES lvhn_profiles(id) ON DELETE CASCADE,
		service_offered_id INTEGER NOT NULL REFERENCES services_offered(id) ON DELETE CASCADE,
		PRIMARY KEY (lvhn_profile_id, service_offered_id)
	);
	CREATE TABLE IF NOT EXISTS lvhn_profile_locations (
		lvhn_profile_id INTEGER NOT NULL REFERENCES lvhn_profiles(id) ON DELETE CASCADE,
		location_id INTEGER NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		PRIMARY KEY (lvhn_profile_id, location_id)
	);
	CREATE TABLE IF NOT EXISTS lvhn_profile_experiences (
		lvhn_profile_id INTEGER NOT NULL REFERENCES lvhn_profiles(id) ON DELETE CASCADE,
		experience_id INTEGER NOT NULL REFERENCES experience_histories(id) ON DELETE CASCADE,
		PRIMARY KEY (lvhn_profile_id, experience_id)
	);
	CREATE TABLE IF NOT EXISTS lvhn_profile_ratings (
		lvhn_profile_id INTEGER NOT NULL REFERENCES lvhn_profiles(id) ON DELETE CASCADE,
		rating_id INTEGER NOT NULL REFERENCES ratings(id) ON DELETE CASCADE,
		PRIMARY KEY (lvhn_profile_id, rating_id)
	);
	`

	_, err := d.db.ExecContext(ctx, schema)
	return err
}

// seed inserts the fixed lookup rows: the provider groups and one
// experience type per defined experience level. Seeding is idempotent.
func (d *DocDB) seed(ctx context.Context) error {
	for _, name := range providerGroupSeeds {
		if _, _, err := d.UpsertName(ctx, TableProviderGroups, name); err != nil {
			return err
		}
	}
	for _, level := range model.ExperienceLevels() {
		if _, _, err := d.UpsertExperienceType(ctx, level.String(), level); err != nil {
			return err
		}
	}
	return nil
}

// StartSearch creates a new search session row and its private image
// directory under the data directory.
func (d *DocDB) StartSearch(ctx context.Context, label, uri, specialty string) (*model.SearchSession, error) {
	now := time.Now()
	imageDir := filepath.Join(d.dataDir, imageDirName,
		now.Format("20060102-150405")+"-"+sanitizeDirName(label))
	if err := os.MkdirAll(imageDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create session image directory: %w", err)
	}

	result, err := NewInsert("searches").
		Set("label", label).
		Set("uri", uri).
		Set("specialty", specialty).
		Set("image_dir", imageDir).
		Exec(ctx, d.db)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read session id: %w", err)
	}

	return &model.SearchSession{
		ID:        id,
		Label:     label,
		URI:       uri,
		Specialty: specialty,
		CreatedAt: now,
		ImageDir:  imageDir,
	}, nil
}

// sanitizeDirName reduces a free-form session label to a safe directory
// name component.
func sanitizeDirName(label string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, strings.TrimSpace(label))
	if mapped == "" {
		return "search"
	}
	return mapped
}
