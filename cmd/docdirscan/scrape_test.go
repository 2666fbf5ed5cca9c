package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eg467/docdirscan/internal/config"
	"github.com/spf13/cobra"
)

// newScrapeTestCmd builds a throwaway command carrying the shared scrape
// flags, parsed against args.
func newScrapeTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	addScrapeFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags() = %v, want nil", err)
	}
	return cmd
}

// TestBuildScrapeConfigDefaults tests that unset flags map to defaults.
func TestBuildScrapeConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := buildScrapeConfig(newScrapeTestCmd(t))
	if err != nil {
		t.Fatalf("buildScrapeConfig() = %v, want nil", err)
	}

	if cfg.Delay != config.DefaultDelay {
		t.Errorf("Delay = %v, want %v", cfg.Delay, config.DefaultDelay)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, config.DefaultTimeout)
	}
	if !cfg.SaveToDB {
		t.Error("SaveToDB should default to true")
	}
	if cfg.DBDir == "" {
		t.Error("DBDir should default to the XDG data dir")
	}
	if cfg.ExcelFile != "" {
		t.Errorf("ExcelFile = %q, want empty", cfg.ExcelFile)
	}
}

// TestBuildScrapeConfigFlags tests flag plumbing into the config.
func TestBuildScrapeConfigFlags(t *testing.T) {
	t.Parallel()

	cmd := newScrapeTestCmd(t,
		"--label", "Cardio sweep",
		"--specialty", "Cardiology",
		"--delay", "2s",
		"--timeout", "10s",
		"--excel", "out.xlsx",
		"--json",
		"--output", "summary.json",
	)

	cfg, err := buildScrapeConfig(cmd)
	if err != nil {
		t.Fatalf("buildScrapeConfig() = %v, want nil", err)
	}

	if cfg.Label != "Cardio sweep" {
		t.Errorf("Label = %q", cfg.Label)
	}
	if cfg.Specialty != "Cardiology" {
		t.Errorf("Specialty = %q", cfg.Specialty)
	}
	if cfg.Delay != 2*time.Second {
		t.Errorf("Delay = %v, want 2s", cfg.Delay)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.ExcelFile != "out.xlsx" {
		t.Errorf("ExcelFile = %q", cfg.ExcelFile)
	}
	if !cfg.JSONReport {
		t.Error("JSONReport should be set")
	}
	if cfg.ReportFile != "summary.json" {
		t.Errorf("ReportFile = %q", cfg.ReportFile)
	}
}

// TestBuildScrapeConfigNoDB tests disabling the database sink.
func TestBuildScrapeConfigNoDB(t *testing.T) {
	t.Parallel()

	cfg, err := buildScrapeConfig(newScrapeTestCmd(t, "--no-db"))
	if err != nil {
		t.Fatalf("buildScrapeConfig() = %v, want nil", err)
	}

	if cfg.SaveToDB {
		t.Error("SaveToDB should be false with --no-db")
	}
	if errors.Is(cfg.Validate(), config.ErrNoSink) == false {
		t.Error("Validate() should reject a run with no sink")
	}
}

// TestBuildScrapeConfigExplicitMissingConfigFile tests that an explicit
// config path that does not exist is an error.
func TestBuildScrapeConfigExplicitMissingConfigFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := buildScrapeConfig(newScrapeTestCmd(t, "--config", missing))
	if err == nil {
		t.Fatal("buildScrapeConfig() = nil, want error for missing config file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want mention of missing file", err)
	}
}

// TestBuildScrapeConfigSearchProfile tests overlaying a named profile from
// an explicit config file.
func TestBuildScrapeConfigSearchProfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".docdirscan")
	content := `
profiles:
  cardiology:
    specialty: Cardiology
    listingUri: "https://example.org/doctors?s=cardiology"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := newScrapeTestCmd(t, "--config", path, "--search-profile", "cardiology")
	cfg, err := buildScrapeConfig(cmd)
	if err != nil {
		t.Fatalf("buildScrapeConfig() = %v, want nil", err)
	}

	if cfg.Specialty != "Cardiology" {
		t.Errorf("Specialty = %q, want from profile", cfg.Specialty)
	}
	if cfg.ListingURI != "https://example.org/doctors?s=cardiology" {
		t.Errorf("ListingURI = %q, want from profile", cfg.ListingURI)
	}

	t.Run("unknown profile is an error", func(t *testing.T) {
		t.Parallel()

		cmd := newScrapeTestCmd(t, "--config", path, "--search-profile", "oncology")
		if _, err := buildScrapeConfig(cmd); !errors.Is(err, config.ErrUnknownProfile) {
			t.Errorf("buildScrapeConfig() = %v, want ErrUnknownProfile", err)
		}
	})
}
