package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The fetch defaults are deliberately gentle: both directories are public
// sites that tolerate slow, sequential readers but not bursts.
const (
	// DefaultDelay is the pause between consecutive HTTP requests.
	// This is a politeness setting; 500ms keeps a full listing crawl
	// under a few minutes while staying well below human click rates.
	// Can be adjusted via the --delay CLI flag.
	DefaultDelay = 500 * time.Millisecond

	// DefaultTimeout is the per-request timeout including body read.
	// Both directories answer in well under a second when healthy, so
	// 30 seconds only matters when a page is effectively down.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxPages is the maximum number of listing pages to walk per
	// search. This prevents runaway crawling if the terminal empty page
	// is never reached. Users can override this via --max-pages.
	DefaultMaxPages = 100

	// DefaultUserAgent identifies the scraper in HTTP requests.
	// A descriptive User-Agent lets directory operators recognize the
	// traffic in their logs.
	DefaultUserAgent = "docdirscan/1.0"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is generous for a profile page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "docdirscan"
)

// Config holds all configuration options for a scrape run.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, SinkConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Label is the human-readable name of this search, recorded with the
	// session row and used to name the image directory. When empty, it is
	// derived from the specialty or the source URI.
	Label string

	// Specialty is the medical specialty this search targets, recorded
	// with the session row.
	Specialty string

	// ListingURI is the first listing page of a hospital-network search.
	// Only used by the lvhn command.
	ListingURI string

	// Inputs are the recorded profile documents (files or directories)
	// to parse. Only used by the ibx command.
	Inputs []string

	// Delay is the pause between consecutive HTTP requests.
	Delay time.Duration

	// Timeout is the per-request timeout including body read.
	Timeout time.Duration

	// MaxPages is the maximum number of listing pages to walk per search.
	// A value of 0 means use the default (DefaultMaxPages).
	MaxPages int

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (DefaultMaxBodySize).
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .docdirscan in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// Profiles holds named search profiles loaded from the config file.
	// This is populated by LoadConfigFile and consulted before a run.
	Profiles *File

	// ProfileName selects a named search profile from the config file.
	// Fields the profile sets fill in any flag left at its default.
	ProfileName string

	// DBDir is the directory path for the SQLite database and downloaded
	// headshots. When empty, results are not persisted to the database.
	// Defaults to the XDG data directory when --db is requested.
	DBDir string

	// SaveToDB indicates whether to persist profiles to the database.
	// This is automatically set to true when DBDir is configured.
	SaveToDB bool

	// ExcelFile is the output path for the Excel workbook.
	// When empty, no workbook is written.
	ExcelFile string

	// JSONReport enables JSON run-summary output instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown run-summary output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the run summary.
	// When set, the summary is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most runs.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, delay).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Delay:       DefaultDelay,
		Timeout:     DefaultTimeout,
		MaxPages:    DefaultMaxPages,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// ApplyProfile overlays a named search profile from the loaded config file.
// Profile values only fill fields the user has not set on the command line,
// so explicit flags always win. Returns ErrUnknownProfile if the name does
// not exist in the file, and is a no-op when ProfileName is empty.
func (c *Config) ApplyProfile() error {
	if c.ProfileName == "" {
		return nil
	}
	if c.Profiles == nil {
		return ErrUnknownProfile
	}
	p, ok := c.Profiles.GetProfile(c.ProfileName)
	if !ok {
		return ErrUnknownProfile
	}

	if c.Label == "" {
		c.Label = p.Label
	}
	if c.Label == "" {
		c.Label = c.ProfileName
	}
	if c.Specialty == "" {
		c.Specialty = p.Specialty
	}
	if c.ListingURI == "" {
		c.ListingURI = p.ListingURI
	}
	if c.MaxPages == DefaultMaxPages && p.MaxPages > 0 {
		c.MaxPages = p.MaxPages
	}
	if c.Delay == DefaultDelay && p.Delay > 0 {
		c.Delay = time.Duration(p.Delay)
	}
	return nil
}

// XDGDataDir returns the XDG data directory for the scraper.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/docdirscan
// On macOS: ~/Library/Application Support/docdirscan
// On Windows: %LOCALAPPDATA%\docdirscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the scraper.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/docdirscan
// On macOS: ~/Library/Application Support/docdirscan
// On Windows: %APPDATA%\docdirscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any network traffic.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// Delay must be non-negative; use 0 for no pause between requests
	if c.Delay < 0 {
		return ErrInvalidDelay
	}

	// MaxPages must be positive; zero pages would mean no crawling
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	// MaxBodySize must be non-negative; use 0 for the default limit
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// A run with neither database nor workbook would discard everything
	if !c.SaveToDB && c.ExcelFile == "" {
		return ErrNoSink
	}

	return nil
}
