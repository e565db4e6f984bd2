package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("get document: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fakeErr("pq: relation content_documents does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

func TestFormatQueryForTrace(t *testing.T) {
	got := formatQueryForTrace(" SELECT   body\nFROM content_documents \t WHERE resource = $1 FOR UPDATE ")
	want := "SELECT body FROM content_documents WHERE resource = $1 FOR UPDATE"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}

	long := formatQueryForTrace("SELECT " + strings.Repeat("x", 600))
	if len(long) != maxTracedQueryLength+3 || !strings.HasSuffix(long, "...") {
		t.Fatalf("expected truncated query, got %d chars", len(long))
	}
}
