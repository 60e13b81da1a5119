// Package client implements the Cobra commands that talk to a running
// epochline server over its HTTP API. The server address comes from
// EPOCHLINE_HTTP and the owner token from EPOCHLINE_OWNER_TOKEN.
package client
