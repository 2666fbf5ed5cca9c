package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display at the end of a run.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables the per-item failure listing.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with the per-item failure listing.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *RunSummary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeCounts(&sb, summary)
	w.writeFailures(&sb, summary)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *RunSummary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "SCRAPE SUMMARY: %s\n", strings.ToUpper(summary.Source))
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	if summary.Label != "" {
		fmt.Fprintf(sb, "Search:    %s\n", summary.Label)
	}
	if summary.SourceURI != "" {
		fmt.Fprintf(sb, "Source:    %s\n", summary.SourceURI)
	}
	fmt.Fprintf(sb, "Started:   %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST"))
	if !summary.FinishedAt.IsZero() {
		fmt.Fprintf(sb, "Duration:  %s\n", summary.Duration().Round(10*time.Millisecond))
	}

	switch {
	case summary.Cancelled:
		sb.WriteString("Status:    CANCELLED (partial results)\n")
	case summary.FailureCount() > 0:
		fmt.Fprintf(sb, "Status:    Complete with %d failures\n", summary.FailureCount())
	default:
		sb.WriteString("Status:    Complete\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCounts(sb *strings.Builder, summary *RunSummary) {
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString("PROFILES\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  Processed: %d\n", summary.Processed)
	fmt.Fprintf(sb, "  New:       %d\n", summary.Created)
	fmt.Fprintf(sb, "  Known:     %d\n", summary.Repeats)
	fmt.Fprintf(sb, "  Failed:    %d\n", summary.FailureCount())
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFailures(sb *strings.Builder, summary *RunSummary) {
	if len(summary.Failures) == 0 || !w.verbose {
		return
	}

	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString("FAILURES\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n\n")

	for _, failure := range summary.Failures {
		fmt.Fprintf(sb, "  * %s\n", failure.Ref)
		if failure.Message != "" {
			fmt.Fprintf(sb, "    %s\n", failure.Message)
		}
	}
	sb.WriteString("\n")
}
