// Package main provides the entry point for the docdirscan CLI.
//
// docdirscan builds a local physician directory from two public sources:
// an insurance-network provider search and a hospital-network "find a
// doctor" site. Scraped profiles are deduplicated into a SQLite database
// and optionally exported to an Excel workbook.
//
// Usage:
//
//	docdirscan lvhn <listing-url>
//	docdirscan ibx <file-or-dir>...
//
// See --help for all available options.
package main

// main is the entry point for docdirscan.
func main() {
	Execute()
}
