// Package filestore keeps each resource document in its own JSON file.
package filestore

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/document"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Backend stores <dir>/<resource>.json. Every access to a file holds that
// file's mutex, so read-modify-write cycles on one resource are serialized.
type Backend struct {
	dir    string
	logger *logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(dir string, logger *logging.Logger) *Backend {
	if logger == nil {
		logger = logging.Default()
	}
	return &Backend{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (b *Backend) Dir() string {
	return b.dir
}

func (b *Backend) Path(resource string) string {
	return filepath.Join(b.dir, resource+".json")
}

func (b *Backend) Load(ctx context.Context, resource string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	lock := b.lockFor(resource)
	lock.Lock()
	defer lock.Unlock()

	return b.read(resource)
}

func (b *Backend) Update(ctx context.Context, resource string, fn document.MutateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock := b.lockFor(resource)
	lock.Lock()
	defer lock.Unlock()

	current, exists, err := b.read(resource)
	if err != nil {
		return err
	}

	next, err := fn(current, exists)
	if err != nil {
		return err
	}
	if next == nil {
		return b.remove(resource)
	}
	return b.write(resource, next)
}

func (b *Backend) read(resource string) ([]byte, bool, error) {
	path := b.Path(resource)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "read %s", path)
	}
	return data, true, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (b *Backend) write(resource string, data []byte) error {
	if err := os.MkdirAll(b.dir, dirPerm); err != nil {
		return errors.Wrapf(err, "create data dir %s", b.dir)
	}

	path := b.Path(resource)
	tmp, err := os.CreateTemp(b.dir, "."+resource+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			b.logger.Warn("remove temp file failed", "path", tmpName, "error", rmErr)
		}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrapf(err, "sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		cleanup()
		return errors.Wrapf(err, "chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrapf(err, "rename %s", path)
	}

	b.logger.Debug("document written", "resource", resource, "path", path, "bytes", len(data))
	return nil
}

func (b *Backend) remove(resource string) error {
	path := b.Path(resource)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "remove %s", path)
	}
	return nil
}

func (b *Backend) lockFor(resource string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()

	lock, ok := b.locks[resource]
	if !ok {
		lock = &sync.Mutex{}
		b.locks[resource] = lock
	}
	return lock
}
