package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTextFormatterFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(
		WithLevel(DebugLevel),
		WithFormatter(&TextFormatter{DisableTimestamp: true}),
		WithOutput(NewWriterOutput(&buf)),
	)
	l.Info("hello", Str("b", "2"), Str("a", "1"))
	got := buf.String()
	if !strings.HasPrefix(got, "INFO hello") {
		t.Fatalf("unexpected line: %q", got)
	}
	if strings.Index(got, "a=1") > strings.Index(got, "b=2") {
		t.Fatalf("fields not sorted: %q", got)
	}
}

func TestLevelGate(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(
		WithLevel(WarnLevel),
		WithFormatter(&TextFormatter{DisableTimestamp: true}),
		WithOutput(NewWriterOutput(&buf)),
	)
	l.Info("dropped")
	l.Warn("kept")
	if strings.Contains(buf.String(), "dropped") {
		t.Fatalf("info line should have been gated: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("warn line missing: %q", buf.String())
	}
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(
		WithLevel(InfoLevel),
		WithFormatter(&JSONFormatter{}),
		WithOutput(NewWriterOutput(&buf)),
	)
	l.With(Component("store")).Info("read ok", Str("version", "abc"))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m[ComponentKey] != "store" {
		t.Fatalf("component field missing: %v", m)
	}
	if m["version"] != "abc" {
		t.Fatalf("version field missing: %v", m)
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("debug"); err != nil || l != DebugLevel {
		t.Fatalf("debug: %v %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
