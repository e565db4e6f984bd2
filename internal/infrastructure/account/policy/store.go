// Package policy holds the admin allow-list: emails from configuration merged
// with an optional YAML file that is reloaded when it changes.
package policy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/riskibarqy/esports-hub/internal/domain/admin"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"gopkg.in/yaml.v3"
)

const defaultDebounce = 200 * time.Millisecond

type fileDocument struct {
	Admins []admin.Member `yaml:"admins"`
}

// Store answers whether an email belongs to an administrator.
type Store struct {
	static   []admin.Member
	path     string
	logger   *logging.Logger
	debounce time.Duration

	mu      sync.RWMutex
	members map[string]string
}

// NewStore loads the allow-list. A missing policy file is treated as empty;
// a malformed one is an error.
func NewStore(emails []string, path string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Default()
	}

	static := make([]admin.Member, 0, len(emails))
	for _, email := range emails {
		if email = admin.NormalizeEmail(email); email != "" {
			static = append(static, admin.Member{Email: email, Role: admin.RoleOwner})
		}
	}

	s := &Store{
		static:   static,
		path:     path,
		logger:   logger,
		debounce: defaultDebounce,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Role returns the admin role of email.
func (s *Store) Role(email string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.members[admin.NormalizeEmail(email)]
	return role, ok
}

func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

// Reload rereads the policy file. On failure the previous allow-list stays.
func (s *Store) Reload() error {
	fromFile, err := s.readFile()
	if err != nil {
		return err
	}

	members := make(map[string]string, len(s.static)+len(fromFile))
	for _, m := range fromFile {
		email := admin.NormalizeEmail(m.Email)
		if email == "" {
			continue
		}
		role := m.Role
		if role == "" {
			role = admin.RoleEditor
		}
		members[email] = role
	}
	for _, m := range s.static {
		members[m.Email] = m.Role
	}

	s.mu.Lock()
	s.members = members
	s.mu.Unlock()
	return nil
}

func (s *Store) readFile() ([]admin.Member, error) {
	if s.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read admin policy %s: %w", s.path, err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse admin policy %s: %w", s.path, err)
	}
	return doc.Admins, nil
}

// Watcher reloads a Store whenever its policy file changes.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
	cancel   context.CancelFunc
}

// Watch starts watching the directory of the policy file, so editors that
// replace the file by rename are seen too. It returns nil, nil when the store
// has no policy file.
func (s *Store) Watch(ctx context.Context) (*Watcher, error) {
	if s.path == "" {
		return nil, nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create policy watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(s.path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		store:   s,
		watcher: fw,
		done:    make(chan struct{}),
		cancel:  cancel,
	}
	go w.run(ctx)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.stopOnce.Do(func() {
		w.cancel()
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	target := filepath.Clean(w.store.path)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.store.debounce)
			} else {
				timer.Reset(w.store.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.store.logger.Warn("admin policy watcher error", "error", err)
		case <-fire:
			fire = nil
			if err := w.store.Reload(); err != nil {
				w.store.logger.Error("admin policy reload failed", "path", w.store.path, "error", err)
				continue
			}
			w.store.logger.Info("admin policy reloaded", "path", w.store.path, "admins", w.store.Size())
		}
	}
}
