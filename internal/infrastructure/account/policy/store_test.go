package policy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/esports-hub/internal/domain/admin"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writePolicy(t *testing.T, path, body string) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename policy: %v", err)
	}
}

func TestStore_MergesStaticAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.yaml")
	writePolicy(t, path, "admins:\n  - email: Editor@Example.com\n    role: editor\n  - email: boss@example.com\n    role: editor\n")

	store, err := NewStore([]string{"BOSS@example.com", " "}, path, logging.NewNop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if role, ok := store.Role("editor@example.com"); !ok || role != admin.RoleEditor {
		t.Fatalf("expected editor role, got %q ok=%v", role, ok)
	}
	if role, ok := store.Role("boss@example.com"); !ok || role != admin.RoleOwner {
		t.Fatalf("configured emails must win, got %q ok=%v", role, ok)
	}
	if _, ok := store.Role("someone@example.com"); ok {
		t.Fatalf("unexpected admin")
	}
	if store.Size() != 2 {
		t.Fatalf("expected 2 admins, got %d", store.Size())
	}
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	store, err := NewStore(nil, filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if store.Size() != 0 {
		t.Fatalf("expected empty allow-list")
	}
}

func TestStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.yaml")
	writePolicy(t, path, "admins: [\n")

	if _, err := NewStore(nil, path, nil); err == nil {
		t.Fatalf("expected malformed policy to fail")
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.yaml")
	writePolicy(t, path, "admins: []\n")

	store, err := NewStore(nil, path, logging.NewNop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.debounce = 10 * time.Millisecond
	w, err := store.Watch(context.Background())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			t.Fatalf("close watcher: %v", err)
		}
	}()

	writePolicy(t, path, "admins:\n  - email: new@example.com\n")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := store.Role("new@example.com"); ok {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("policy change was not picked up")
}

func TestStore_WatchWithoutFile(t *testing.T) {
	store, err := NewStore([]string{"a@example.com"}, "", nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	w, err := store.Watch(context.Background())
	if err != nil || w != nil {
		t.Fatalf("expected no watcher, got %v %v", w, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("nil watcher close: %v", err)
	}
}
