// Package ibx parses physician profiles from the insurance-network (IBX)
// directory. The directory's search UI is a JavaScript application; the
// usable data is the profile JSON document its backend returns for each
// physician, so this package consumes raw JSON strings rather than HTML.
//
// Parsing is tolerant by design: a missing optional field yields an empty
// value, never a failed parse. Only a document that cannot be decoded at all
// is an error, and since one document is one profile, that error fails
// exactly that profile.
//
// The package has no I/O of its own. Documents arrive through a Feed, a
// bounded queue that decouples the core from whatever produced the raw
// documents: a recorded fixture directory, a direct HTTP client, or an
// embedded browser.
package ibx
