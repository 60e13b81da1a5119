package eventsvc

import "errors"

// ErrUnauthorized is returned when the caller lacks the owner capability.
// Checked before validation, never retried.
var ErrUnauthorized = errors.New("unauthorized")

// Caller is the capability the identity layer established for a request.
// The core only ever consumes this boolean.
type Caller struct {
	Owner bool
}

// ListOptions controls the public listing.
type ListOptions struct {
	// Category keeps only events of one category when non-empty.
	Category string
	// Filter is an optional CEL expression evaluated per event. Available
	// variables: year, end_year, has_end_year, name, category, region,
	// description. When empty, all events pass.
	Filter string
	// Limit caps the number of returned events. Zero means no cap.
	Limit int
}
