// Package database provides SQLite-based storage for scraped physician
// profiles.
//
// This package implements the DocDB, which stores:
//   - Profile rows for both directory sources, keyed by each source's
//     natural identifier
//   - Shared sub-entities (locations, institutions, experience types,
//     specialties, rating categories) deduplicated behind normalized
//     name lookups
//   - Search sessions and the link rows tying profiles to the runs that
//     saw them
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for a sequential scraper
// 4. WAL mode provides good concurrent read performance
package database
