package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for the data layer. Callers match with errors.Is; the
// concrete types below carry the details.
var (
	// ErrVersionConflict means the remote document changed since it was
	// last read. Retried by the mutator.
	ErrVersionConflict = errors.New("version conflict")

	// ErrStoreUnavailable means a network or remote failure unrelated to
	// versioning. Never retried by the mutator.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrRetriesExhausted means every attempt in the retry budget lost a
	// conflict race.
	ErrRetriesExhausted = errors.New("conflict retries exhausted")
)

// ConflictError reports a write rejected because the supplied version token
// no longer matches the store's current token.
type ConflictError struct {
	Supplied Version
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict: token %q is stale", e.Supplied)
}

func (e *ConflictError) Is(target error) bool { return target == ErrVersionConflict }

// UnavailableError reports a failed remote call: transport error, unexpected
// status, or a malformed document.
type UnavailableError struct {
	Op     string
	Status int
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s failed: status %d", e.Op, e.Status)
}

func (e *UnavailableError) Is(target error) bool { return target == ErrStoreUnavailable }

func (e *UnavailableError) Unwrap() error { return e.Err }

// RetryExhaustedError is the terminal failure after the retry budget is
// spent. Unwrap exposes the last conflict, so errors.Is(err,
// ErrVersionConflict) also holds.
type RetryExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("conflict retries exhausted after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetryExhaustedError) Is(target error) bool { return target == ErrRetriesExhausted }

func (e *RetryExhaustedError) Unwrap() error { return e.Last }
