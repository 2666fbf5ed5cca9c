package model

import "time"

// SearchSession identifies a single scrape run. Every profile persisted while
// a session is active gains a link row to it, so one profile can be
// associated with many sessions over time.
//
// Design decision: The session is an explicit value passed into persistence
// calls rather than process-wide mutable state. This removes order-of-call
// coupling between starting a search and saving profiles: a nil session
// simply means "no session links, no image downloads".
type SearchSession struct {
	// ID is the surrogate key of the session row.
	ID int64 `json:"id"`

	// Label is the operator-supplied name for the run.
	Label string `json:"label,omitempty"`

	// URI is the originating search/listing URI.
	URI string `json:"uri,omitempty"`

	// Specialty is the specialty filter the search was run with.
	Specialty string `json:"specialty,omitempty"`

	// CreatedAt is when the session row was created. Session rows are
	// created once at the start of a run and never mutated.
	CreatedAt time.Time `json:"created_at"`

	// ImageDir is the per-run directory that downloaded headshots are
	// written into. The directory is exclusively owned by the session and
	// safe to delete wholesale when the session is replaced.
	ImageDir string `json:"image_dir,omitempty"`
}
