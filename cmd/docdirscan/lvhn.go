package main

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/eg467/docdirscan/internal/config"
	"github.com/eg467/docdirscan/internal/export"
	"github.com/eg467/docdirscan/internal/lvhn"
	"github.com/eg467/docdirscan/internal/model"
	"github.com/eg467/docdirscan/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewLvhnCmd creates the lvhn command.
func NewLvhnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lvhn [listing-url]",
		Short: "Crawl a hospital-network doctor search",
		Long: `Crawl a hospital-network "find a doctor" search, page by page, and
persist every profile found.

For each summary card on a listing page the crawler fetches the linked
detail page and collects biography, education history, condition and
service terms, locations, and patient ratings. Profiles whose detail
page fails to load are still recorded, with the failure noted.

Examples:
  # Crawl a search and save to the database
  docdirscan lvhn "https://example.org/doctors?s=cardiology" -s Cardiology

  # Also write an Excel workbook with embedded headshots
  docdirscan lvhn "https://example.org/doctors?s=cardiology" -x cardiology.xlsx

  # Replay a search profile from the configuration file
  docdirscan lvhn -P cardiology

Configuration file (.docdirscan) example:
  profiles:
    cardiology:
      specialty: Cardiology
      listingUri: "https://example.org/doctors?s=cardiology"
      delay: 2s`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLvhnCmd,
	}

	addScrapeFlags(cmd)
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of listing pages to walk")

	return cmd
}

// runLvhnCmd executes the lvhn command.
func runLvhnCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScrapeConfig(cmd)
	if err != nil {
		return err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return err
	}

	if len(args) > 0 {
		cfg.ListingURI = args[0]
	}
	if cfg.ListingURI == "" {
		return errors.New("no listing URL provided (pass one as an argument or via a search profile)")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	listing, err := url.Parse(cfg.ListingURI)
	if err != nil || !listing.IsAbs() {
		return fmt.Errorf("invalid listing URL %q", cfg.ListingURI)
	}

	if cfg.Label == "" {
		cfg.Label = cfg.Specialty
	}
	if cfg.Label == "" {
		cfg.Label = listing.Host
	}

	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)

	ctx, cancel := signalContext(logger)
	defer cancel()

	client := newFetchClient(cfg)
	crawler := lvhn.NewCrawler(client,
		lvhn.WithMaxPages(cfg.MaxPages),
		lvhn.WithLogger(logger),
	)

	// Assemble the sinks the run writes to
	var saver export.MultiSaver[*model.LvhnProfile]

	if cfg.SaveToDB {
		db, err := openDocDB(cfg, client, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())

		saver = append(saver, export.NewLvhnDBSink(db, cfg.Specialty))
	}

	if cfg.ExcelFile != "" {
		saver = append(saver, export.NewExcelSink(cfg.ExcelFile, "Providers", export.LvhnColumns(),
			export.WithHeadshots(lvhnHeadshotURI, client),
			export.WithExcelLogger[*model.LvhnProfile](logger),
		))
	}

	run := pipeline.NewRun("lvhn", cfg.Label, listing.String())

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	p.AddSteps(
		pipeline.NewLvhnCrawlStep(crawler, listing, pipeline.WithLvhnCrawlLogger(logger)),
		pipeline.NewLvhnPersistStep(saver),
	)

	fmt.Printf("Crawling %s...\n", listing)
	execErr := p.Execute(ctx, run)

	if err := outputSummary(cfg, run.Summary, verbose); err != nil {
		logger.Error("summary output failed", "error", err)
	}

	return execErr
}

// lvhnHeadshotURI returns the remote headshot URI for a profile, or empty
// when the listing published none.
func lvhnHeadshotURI(p *model.LvhnProfile) string {
	if p.Summary == nil || p.Summary.ImageURI == nil {
		return ""
	}
	return p.Summary.ImageURI.String()
}
