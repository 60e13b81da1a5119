// Package log provides epochline's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Internally it is backed by Go's
// standard library slog via a custom handler that feeds our formatter/output
// pipeline, so the whole codebase logs through one consistent surface.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("store"))
//	l.Info("document written", log.Str("version", v))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config supporting JSON
// or text formatting.
//
// # Interop
//
// To integrate with libraries expecting the standard library logger (Pebble
// among them), use RedirectStdLog or ToStdLogger.
package log
