package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/eg467/docdirscan/internal/config"
	"github.com/eg467/docdirscan/internal/database"
	"github.com/eg467/docdirscan/internal/fetch"
	"github.com/eg467/docdirscan/internal/log"
	"github.com/eg467/docdirscan/internal/report"
	"github.com/spf13/cobra"
)

// addScrapeFlags registers the flags shared by the lvhn and ibx commands.
func addScrapeFlags(cmd *cobra.Command) {
	// Search identity flags
	cmd.Flags().StringP("label", "l", "",
		"Human-readable search label recorded with the session")
	cmd.Flags().StringP("specialty", "s", "",
		"Medical specialty this search targets")
	cmd.Flags().StringP("search-profile", "P", "",
		"Named search profile from the configuration file")

	// Fetch behavior flags
	cmd.Flags().DurationP("delay", "d", config.DefaultDelay,
		"Pause between consecutive HTTP requests")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout including body read")

	// Persistence flags
	cmd.Flags().String("db-dir", "",
		"Directory for the SQLite database and headshots (default: XDG data dir)")
	cmd.Flags().Bool("no-db", false,
		"Skip the database; requires --excel")
	cmd.Flags().StringP("excel", "x", "",
		"Also write profiles to an Excel workbook at this path")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .docdirscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON run summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown run summary (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write run summary to specified file path (creates directories if needed)")
}

// buildScrapeConfig creates a Config from the shared scrape flags, loads
// the configuration file, and overlays the selected search profile.
func buildScrapeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Label, err = cmd.Flags().GetString("label")
	if err != nil {
		return nil, err
	}

	cfg.Specialty, err = cmd.Flags().GetString("specialty")
	if err != nil {
		return nil, err
	}

	cfg.ProfileName, err = cmd.Flags().GetString("search-profile")
	if err != nil {
		return nil, err
	}

	cfg.Delay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB
	if cfg.SaveToDB && cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	cfg.ExcelFile, err = cmd.Flags().GetString("excel")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// Load search profiles from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Profiles, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if err := cfg.ApplyProfile(); err != nil {
		return nil, fmt.Errorf("search profile %q: %w", cfg.ProfileName, err)
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// signalContext returns a context cancelled on SIGINT/SIGTERM so an
// in-flight crawl saves what it has and exits cleanly.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// newFetchClient builds the polite HTTP client from the run configuration.
func newFetchClient(cfg *config.Config) *fetch.Client {
	return fetch.NewClient(
		fetch.WithDelay(cfg.Delay),
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	)
}

// openDocDB opens the directory database for a scrape run.
func openDocDB(cfg *config.Config, images *fetch.Client, logger *slog.Logger) (*database.DocDB, error) {
	opts := database.DefaultOptions()
	opts.ImageClient = images
	opts.Logger = logger

	db, err := database.Open(cfg.DBDir, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// outputSummary writes the run summary in the requested format.
func outputSummary(cfg *config.Config, summary *report.RunSummary, verbose bool) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	if cfg.JSONReport {
		_, err := report.NewJSONWriter(output, report.WithPrettyPrint()).Write(summary)
		return err
	}

	if cfg.MarkdownReport {
		_, err := report.NewMarkdownWriter(output).Write(summary)
		return err
	}

	_, err := report.NewSimpleWriter(output, report.WithVerbose(verbose)).Write(summary)
	return err
}

// setupLogger installs the truncating logger as the process default.
func setupLogger(verbose bool) *slog.Logger {
	logger := log.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}
