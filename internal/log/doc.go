// Package log provides logging for the scraper, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Truncation of oversized attribute values (raw page bodies)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Scrape debugging wants raw documents attached to log records, but a
// profile page runs to hundreds of kilobytes. The TruncateHandler caps
// string attribute values so a single record cannot flood the log while
// still showing enough of the document to diagnose a parse failure.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Warn("parse failed",
//	    "uri", doc.URI,
//	    "body", doc.Body, // capped at the configured limit
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
