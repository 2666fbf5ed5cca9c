// Package export writes scraped profiles to output sinks. The database and
// spreadsheet targets implement one ProfileSaver interface so commands can
// fan a run out to any combination of them.
package export
