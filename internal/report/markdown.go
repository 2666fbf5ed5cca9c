package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeCounts(md, summary)
	w.writeFailures(md, summary)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *RunSummary) {
	md.H1("Scrape Summary: " + strings.ToUpper(summary.Source))
	md.LF()

	rows := [][]string{
		{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if summary.Label != "" {
		rows = append(rows, []string{"Search", summary.Label})
	}
	if summary.SourceURI != "" {
		rows = append(rows, []string{"Source", summary.SourceURI})
	}
	if !summary.FinishedAt.IsZero() {
		rows = append(rows, []string{"Duration", summary.Duration().String()})
	}
	status := "Complete"
	if summary.Cancelled {
		status = "Cancelled (partial results)"
	}
	rows = append(rows, []string{"Status", status})

	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows:   rows,
	})
	md.LF()
}

func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, summary *RunSummary) {
	md.H2("Profiles")
	md.LF()
	md.Table(markdown.TableSet{
		Header: []string{"Processed", "New", "Known", "Failed"},
		Rows: [][]string{{
			strconv.Itoa(summary.Processed),
			strconv.Itoa(summary.Created),
			strconv.Itoa(summary.Repeats),
			strconv.Itoa(summary.FailureCount()),
		}},
	})
	md.LF()
}

func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, summary *RunSummary) {
	if len(summary.Failures) == 0 {
		return
	}
	md.H2("Failures")
	md.LF()

	rows := make([][]string, 0, len(summary.Failures))
	for _, failure := range summary.Failures {
		rows = append(rows, []string{failure.Ref, failure.Message})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Item", "Error"},
		Rows:   rows,
	})
}
