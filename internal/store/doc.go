// Package store implements the versioned document store client and the
// conflict-retrying mutator that together form epochline's data layer.
//
// # Remote contract
//
// The remote store is a versioned blob store keyed by a single path. It
// offers no field-level update and no locking beyond "supply the version
// token you last read; the store rejects stale tokens":
//
//	GET  {base}{path}  -> 200, body = document bytes, ETag = version token
//	PUT  {base}{path}  -> If-Match: <token>, body = {"content": ..., "message": ...}
//	                      200/201, ETag = new token
//	                      409/412 -> VersionConflict
//	                      anything else -> StoreUnavailable
//
// An empty token on Write sends If-None-Match: * instead, which creates the
// document if absent (the seed path).
//
// # Mutations
//
// Every logical mutation is a whole-document read-modify-write. Client.Mutate
// runs the caller's apply function against a collection read freshly inside
// the retry loop, so a stale version token can never be captured by the
// caller. Only version conflicts are retried; validation failures, missing
// ids, and store outages surface immediately.
package store
