// Package id provides a 128-bit, lexicographically sortable identifier.
//
// # Format
//
// The ID is 16 bytes big-endian: [8 bytes ms_timestamp][8 bytes sequence],
// rendered as a 32-character lowercase hex string. Byte-wise comparison
// preserves chronological order, and IDs generated within the same
// millisecond remain strictly increasing by sequence.
//
// Timeline event identifiers and audit record keys are both minted here; the
// hex form is the opaque id the rest of the system passes around.
//
// # Monotonicity
//
// The Generator ensures per-process monotonicity:
//   - If the system clock regresses, it pins to the last seen millisecond and
//     increments the sequence to avoid going backwards.
//   - If the sequence would overflow within a millisecond, it waits for the
//     next millisecond before emitting the next ID.
package id
