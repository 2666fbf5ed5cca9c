package export

import (
	"context"
	"errors"
	"strings"
)

// ProfileSaver receives the profiles of one scrape run.
//
// StartSession is called once before the first profile, AddProfile once per
// profile in source order, and Save once after the last profile. A saver
// whose Save is never called may leave nothing behind.
type ProfileSaver[T any] interface {
	// StartSession begins a new run with the operator's label and the
	// originating search URI.
	StartSession(ctx context.Context, label, sourceURI string) error

	// AddProfile records one scraped profile.
	AddProfile(ctx context.Context, profile T) error

	// Save finalizes the sink (flushes files, closes handles).
	Save() error
}

// Column describes one spreadsheet column: a header label and a typed
// extractor producing the cell text for a profile.
//
// Design decision: Columns are plain data in a static ordered slice rather
// than anything reflective. Adding a column is a one-line change and the
// compiler checks every extractor against the profile type.
type Column[T any] struct {
	// Label is the header text for the column.
	Label string

	// Extract produces the cell text for one profile.
	Extract func(T) string
}

// MultiSaver fans one run out to several sinks. Each call is forwarded to
// every sink; all errors are collected rather than stopping at the first,
// so one broken sink does not starve the others.
type MultiSaver[T any] []ProfileSaver[T]

// StartSession forwards to every sink.
func (m MultiSaver[T]) StartSession(ctx context.Context, label, sourceURI string) error {
	var errs []error
	for _, saver := range m {
		errs = append(errs, saver.StartSession(ctx, label, sourceURI))
	}
	return errors.Join(errs...)
}

// AddProfile forwards to every sink.
func (m MultiSaver[T]) AddProfile(ctx context.Context, profile T) error {
	var errs []error
	for _, saver := range m {
		errs = append(errs, saver.AddProfile(ctx, profile))
	}
	return errors.Join(errs...)
}

// Save forwards to every sink.
func (m MultiSaver[T]) Save() error {
	var errs []error
	for _, saver := range m {
		errs = append(errs, saver.Save())
	}
	return errors.Join(errs...)
}

// Created sums the created counts of every sink that tracks them.
func (m MultiSaver[T]) Created() int {
	var total int
	for _, saver := range m {
		if stats, ok := saver.(Stats); ok {
			total += stats.Created()
		}
	}
	return total
}

// Repeated sums the repeat counts of every sink that tracks them.
func (m MultiSaver[T]) Repeated() int {
	var total int
	for _, saver := range m {
		if stats, ok := saver.(Stats); ok {
			total += stats.Repeated()
		}
	}
	return total
}

// joinLines renders a multi-valued field as one cell with a line per value,
// dropping empties.
func joinLines[E any](items []E, format func(E) string) string {
	var lines []string
	for _, item := range items {
		if line := strings.TrimSpace(format(item)); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
