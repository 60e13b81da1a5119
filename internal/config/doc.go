// Package config defines epochline's process configuration: where the remote
// document store lives, who the owner is, and the data-layer tunables. Values
// load from an optional JSON file, then EPOCHLINE_* environment variables,
// then command-line flags, each layer overriding the last.
package config
