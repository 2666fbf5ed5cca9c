package report

import "time"

// Failure records one profile that could not be parsed or persisted,
// identified by a source-specific reference (a directory id, a file name,
// or a detail-page URI).
type Failure struct {
	// Ref identifies the failed item within its source.
	Ref string `json:"ref"`

	// Message is the failure description.
	Message string `json:"message"`
}

// RunSummary accumulates the outcome of one scrape run: how many profiles
// were processed, how many were first sightings, and what failed. Steps
// mutate it as they execute; writers render it when the run ends.
type RunSummary struct {
	// Source names the directory scraped ("ibx" or "lvhn").
	Source string `json:"source"`

	// Label is the operator-supplied session label.
	Label string `json:"label,omitempty"`

	// SourceURI is the listing or fixture location the run read from.
	SourceURI string `json:"source_uri,omitempty"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Processed counts every profile that reached the persistence stage.
	Processed int `json:"processed"`

	// Created counts profiles first seen this run.
	Created int `json:"created"`

	// Repeats counts profiles already known to the store.
	Repeats int `json:"repeats"`

	// Failures lists items that could not be parsed or persisted.
	Failures []Failure `json:"failures,omitempty"`

	// Cancelled is set when the run stopped on context cancellation.
	Cancelled bool `json:"cancelled,omitempty"`
}

// NewRunSummary starts a summary for one run.
func NewRunSummary(source, label, sourceURI string) *RunSummary {
	return &RunSummary{
		Source:    source,
		Label:     label,
		SourceURI: sourceURI,
		StartedAt: time.Now(),
	}
}

// AddFailure records one failed item.
func (s *RunSummary) AddFailure(ref string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	s.Failures = append(s.Failures, Failure{Ref: ref, Message: msg})
}

// Finish stamps the end of the run.
func (s *RunSummary) Finish() {
	s.FinishedAt = time.Now()
}

// Duration returns the wall-clock length of the run, zero until Finish.
func (s *RunSummary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// FailureCount returns the number of recorded failures.
func (s *RunSummary) FailureCount() int {
	return len(s.Failures)
}
