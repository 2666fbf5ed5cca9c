// Package fetch provides the HTTP client used for all directory requests.
//
// The directory sites expect one in-flight request at a time from a given
// visitor; parallel fetching risks being flagged as automated traffic. The
// Client therefore serializes requests and enforces a mandatory politeness
// delay between consecutive fetches. Timeouts are bounded per request and a
// timeout surfaces as an ordinary error the caller may retry; no automatic
// retry is built in.
package fetch
