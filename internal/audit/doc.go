// Package audit keeps a local, append-only trail of successful timeline
// writes: who did what, the change description that went to the remote store,
// and the version token transition. Records live in the process-local Pebble
// database under time-sortable keys, so recent history reads are a bounded
// reverse scan.
//
// The trail is advisory. The remote store's own history remains the source
// of truth; this log exists so the operator can answer "what changed" without
// a remote round trip.
package audit
