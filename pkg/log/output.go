package log

import (
	"io"
	"os"
	"sync"
)

// ConsoleOutput writes formatted entries to a single writer, serialized by a
// mutex so concurrent goroutines do not interleave lines.
type ConsoleOutput struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleOutput returns a ConsoleOutput writing to stderr.
func NewConsoleOutput() *ConsoleOutput {
	return &ConsoleOutput{w: os.Stderr}
}

// NewWriterOutput returns a ConsoleOutput writing to the provided writer.
func NewWriterOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

// Write implements Output.
func (o *ConsoleOutput) Write(_ *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.w.Write(formatted)
	return err
}

// Close implements Output. Console writers are not owned by the logger.
func (o *ConsoleOutput) Close() error { return nil }

// NullOutput discards all entries.
type NullOutput struct{}

// NewNullOutput returns an Output that drops everything.
func NewNullOutput() *NullOutput { return &NullOutput{} }

// Write implements Output.
func (o *NullOutput) Write(_ *Entry, _ []byte) error { return nil }

// Close implements Output.
func (o *NullOutput) Close() error { return nil }
