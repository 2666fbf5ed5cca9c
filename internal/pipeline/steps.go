package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/eg467/docdirscan/internal/export"
	"github.com/eg467/docdirscan/internal/ibx"
	"github.com/eg467/docdirscan/internal/lvhn"
	"github.com/eg467/docdirscan/internal/model"
)

// LvhnCrawlStep crawls the hospital-network listing and detail pages and
// fills the run with assembled profiles. Profiles whose detail fetch failed
// arrive with their Err field set; the step records them as failures but
// keeps them in the run so the persist step can store the failure.
type LvhnCrawlStep struct {
	crawler    *lvhn.Crawler
	listingURI *url.URL
	logger     *slog.Logger
}

// LvhnCrawlStepOption configures an LvhnCrawlStep.
type LvhnCrawlStepOption func(*LvhnCrawlStep)

// WithLvhnCrawlLogger sets a custom logger for the crawl step.
func WithLvhnCrawlLogger(logger *slog.Logger) LvhnCrawlStepOption {
	return func(s *LvhnCrawlStep) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewLvhnCrawlStep creates the crawl step for one listing URI.
func NewLvhnCrawlStep(crawler *lvhn.Crawler, listingURI *url.URL, opts ...LvhnCrawlStepOption) *LvhnCrawlStep {
	s := &LvhnCrawlStep{
		crawler:    crawler,
		listingURI: listingURI,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step's name for logging purposes.
func (s *LvhnCrawlStep) Name() string { return "lvhn-crawl" }

// Do crawls the full listing and assembles every profile.
func (s *LvhnCrawlStep) Do(ctx context.Context, run *Run) error {
	profiles, err := s.crawler.FetchProfiles(ctx, s.listingURI)
	if err != nil {
		return fmt.Errorf("crawl %s: %w", s.listingURI, err)
	}

	for i := range profiles {
		profile := &profiles[i]
		if profile.Err != "" {
			run.Summary.AddFailure(profile.Summary.DetailsURI.String(),
				fmt.Errorf("%s", profile.Err))
		}
		run.LvhnProfiles = append(run.LvhnProfiles, profile)
	}
	s.logger.InfoContext(ctx, "crawl complete",
		"profiles", len(run.LvhnProfiles),
		"failures", run.Summary.FailureCount(),
	)
	return nil
}

// IbxFeedStep consumes profile JSON documents from a feed and parses each
// into a profile. A document that fails to parse is recorded as a failure
// and skipped; the batch continues.
type IbxFeedStep struct {
	feed   *ibx.Feed
	logger *slog.Logger
}

// IbxFeedStepOption configures an IbxFeedStep.
type IbxFeedStepOption func(*IbxFeedStep)

// WithIbxFeedLogger sets a custom logger for the feed step.
func WithIbxFeedLogger(logger *slog.Logger) IbxFeedStepOption {
	return func(s *IbxFeedStep) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewIbxFeedStep creates the parse step reading from feed.
func NewIbxFeedStep(feed *ibx.Feed, opts ...IbxFeedStepOption) *IbxFeedStep {
	s := &IbxFeedStep{
		feed:   feed,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step's name for logging purposes.
func (s *IbxFeedStep) Name() string { return "ibx-parse" }

// Do drains the feed. The producer must close the feed or the step blocks;
// cancellation unblocks it.
func (s *IbxFeedStep) Do(ctx context.Context, run *Run) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case doc, ok := <-s.feed.Documents():
			if !ok {
				s.logger.InfoContext(ctx, "feed drained", "profiles", len(run.IbxProfiles))
				return nil
			}
			profile, err := ibx.ParseProfile(doc.Body)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping unparseable document", "uri", doc.URI, "error", err)
				run.Summary.AddFailure(doc.URI, err)
				continue
			}
			run.IbxProfiles = append(run.IbxProfiles, profile)
		}
	}
}

// LvhnPersistStep writes the run's hospital-network profiles to a sink.
type LvhnPersistStep struct {
	saver export.ProfileSaver[*model.LvhnProfile]
}

// NewLvhnPersistStep creates the persist step for the given sink.
func NewLvhnPersistStep(saver export.ProfileSaver[*model.LvhnProfile]) *LvhnPersistStep {
	return &LvhnPersistStep{saver: saver}
}

// Name returns the step's name for logging purposes.
func (s *LvhnPersistStep) Name() string { return "lvhn-persist" }

// Do persists every profile in the run. A profile that fails to persist is
// recorded and the batch continues; Save always runs.
func (s *LvhnPersistStep) Do(ctx context.Context, run *Run) error {
	if err := s.saver.StartSession(ctx, run.Summary.Label, run.Summary.SourceURI); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	for _, profile := range run.LvhnProfiles {
		if err := ctx.Err(); err != nil {
			_ = s.saver.Save()
			return err
		}
		run.Summary.Processed++
		if err := s.saver.AddProfile(ctx, profile); err != nil {
			run.Summary.AddFailure(profileRef(profile), err)
		}
	}
	collectStats(run, s.saver)
	return s.saver.Save()
}

// IbxPersistStep writes the run's insurance-network profiles to a sink.
type IbxPersistStep struct {
	saver export.ProfileSaver[*model.IbxProfile]
}

// NewIbxPersistStep creates the persist step for the given sink.
func NewIbxPersistStep(saver export.ProfileSaver[*model.IbxProfile]) *IbxPersistStep {
	return &IbxPersistStep{saver: saver}
}

// Name returns the step's name for logging purposes.
func (s *IbxPersistStep) Name() string { return "ibx-persist" }

// Do persists every profile in the run, continuing past per-profile
// failures.
func (s *IbxPersistStep) Do(ctx context.Context, run *Run) error {
	if err := s.saver.StartSession(ctx, run.Summary.Label, run.Summary.SourceURI); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	for _, profile := range run.IbxProfiles {
		if err := ctx.Err(); err != nil {
			_ = s.saver.Save()
			return err
		}
		run.Summary.Processed++
		if err := s.saver.AddProfile(ctx, profile); err != nil {
			run.Summary.AddFailure(strconv.FormatInt(profile.ID, 10), err)
		}
	}
	collectStats(run, s.saver)
	return s.saver.Save()
}

// collectStats copies created/repeated counts into the summary when the
// sink tracks them.
func collectStats(run *Run, saver any) {
	if stats, ok := saver.(export.Stats); ok {
		run.Summary.Created += stats.Created()
		run.Summary.Repeats += stats.Repeated()
	}
}

// profileRef derives a stable failure reference for a profile.
func profileRef(profile *model.LvhnProfile) string {
	if profile.Summary != nil && profile.Summary.DetailsURI != nil {
		return profile.Summary.DetailsURI.String()
	}
	if profile.Summary != nil {
		return profile.Summary.Name
	}
	return "unknown profile"
}
