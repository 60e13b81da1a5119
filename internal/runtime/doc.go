// Package runtime wires configuration, the remote store client, and the
// local audit database into a single-process instance the services and
// transports share.
package runtime
