package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

func TestNewJSONTo_WritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo).With("component", "test")

	logger.Debug("hidden")
	logger.Warn("write failed", "resource", "news", "error", errors.New("disk full"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := jsoniter.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["msg"] != "write failed" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["level"] != "WARN" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if entry["resource"] != "news" || entry["component"] != "test" {
		t.Fatalf("missing fields in entry: %v", entry)
	}
	if entry["error"] != "disk full" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": LevelDebug,
		"warn":  LevelWarn,
		"error": LevelError,
		"info":  LevelInfo,
		"bogus": LevelInfo,
		"":      LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}

func TestSetMirror_ReceivesEnabledEntries(t *testing.T) {
	type mirrored struct {
		level Level
		msg   string
		args  []any
	}
	var got []mirrored
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, mirrored{level: level, msg: msg, args: args})
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger := NewJSONTo(io.Discard, LevelInfo)
	logger.Debug("filtered")
	logger.InfoContext(context.Background(), "team created", "team_id", "t1")

	if len(got) != 1 {
		t.Fatalf("expected 1 mirrored entry, got %d", len(got))
	}
	if got[0].level != LevelInfo || got[0].msg != "team created" || got[0].args[1] != "t1" {
		t.Fatalf("unexpected mirrored entry: %+v", got[0])
	}

	SetMirror(nil)
	logger.Info("after reset")
	if len(got) != 1 {
		t.Fatalf("expected mirror to be removed, got %d entries", len(got))
	}
}
