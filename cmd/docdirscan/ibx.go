package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/eg467/docdirscan/internal/export"
	"github.com/eg467/docdirscan/internal/ibx"
	"github.com/eg467/docdirscan/internal/model"
	"github.com/eg467/docdirscan/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewIbxCmd creates the ibx command.
func NewIbxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ibx <file-or-dir>...",
		Short: "Parse recorded insurance-network profile documents",
		Long: `Parse profile documents recorded from an insurance-network provider
search and persist every profile found.

The insurance directory renders through an authenticated browser session,
so this command replays recorded profile JSON instead of fetching live.
Arguments are .json files or directories of them; directories are read
in filename order.

Examples:
  # Parse a directory of recorded profile documents
  docdirscan ibx ./captures/cardiology -s Cardiology

  # Parse individual files and also write an Excel workbook
  docdirscan ibx p1.json p2.json -x providers.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIbxCmd,
	}

	addScrapeFlags(cmd)

	return cmd
}

// runIbxCmd executes the ibx command.
func runIbxCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScrapeConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Inputs = args

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if cfg.Label == "" {
		cfg.Label = cfg.Specialty
	}
	if cfg.Label == "" {
		cfg.Label = "ibx"
	}

	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)

	ctx, cancel := signalContext(logger)
	defer cancel()

	docs, err := loadDocuments(cfg.Inputs)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no profile documents found in %s", strings.Join(cfg.Inputs, ", "))
	}

	// Replay the recorded documents through the feed the live session
	// producer would use. The buffer holds the whole batch so publishing
	// completes before the pipeline starts draining.
	feed := ibx.NewFeed(len(docs))
	for _, doc := range docs {
		if err := feed.Publish(ctx, doc); err != nil {
			return err
		}
	}
	feed.Close()

	client := newFetchClient(cfg)

	// Assemble the sinks the run writes to
	var saver export.MultiSaver[*model.IbxProfile]

	if cfg.SaveToDB {
		db, err := openDocDB(cfg, client, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())

		saver = append(saver, export.NewIbxDBSink(db, cfg.Specialty))
	}

	if cfg.ExcelFile != "" {
		saver = append(saver, export.NewExcelSink(cfg.ExcelFile, "Providers", export.IbxColumns(),
			export.WithHeadshots(ibxHeadshotURI, client),
			export.WithExcelLogger[*model.IbxProfile](logger),
		))
	}

	run := pipeline.NewRun("ibx", cfg.Label, strings.Join(cfg.Inputs, ", "))

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	p.AddSteps(
		pipeline.NewIbxFeedStep(feed, pipeline.WithIbxFeedLogger(logger)),
		pipeline.NewIbxPersistStep(saver),
	)

	fmt.Printf("Parsing %d profile documents...\n", len(docs))
	execErr := p.Execute(ctx, run)

	if err := outputSummary(cfg, run.Summary, verbose); err != nil {
		logger.Error("summary output failed", "error", err)
	}

	return execErr
}

// loadDocuments reads every input argument as either a recorded profile
// file or a directory of them.
func loadDocuments(inputs []string) ([]ibx.Document, error) {
	var docs []ibx.Document
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("cannot read input %s: %w", input, err)
		}

		if info.IsDir() {
			dirDocs, err := ibx.ReadDir(input)
			if err != nil {
				return nil, err
			}
			docs = append(docs, dirDocs...)
			continue
		}

		body, err := os.ReadFile(input) //nolint:gosec // User-provided input path is intentional
		if err != nil {
			return nil, fmt.Errorf("cannot read input %s: %w", input, err)
		}
		docs = append(docs, ibx.Document{URI: input, Body: string(body)})
	}
	return docs, nil
}

// ibxHeadshotURI returns the remote headshot URI for a profile, or empty
// when the directory published none.
func ibxHeadshotURI(p *model.IbxProfile) string {
	return p.ImageURI
}
