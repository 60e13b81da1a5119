// Package httpserver exposes the timeline service over HTTP with a JSON
// API. Listing and health are public; mutations and the audit trail require
// the owner bearer token. Routes live in the controllers subpackage.
package httpserver
