// Package pebblestore wraps a Pebble database with the small helper surface
// the audit trail needs: keyed get/set/delete, batches, and iterators, with a
// process-wide fsync policy chosen at open time.
package pebblestore
