package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/document"
)

// Backend keeps documents in process memory.
type Backend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewBackend() *Backend {
	return &Backend{docs: make(map[string][]byte)}
}

func (b *Backend) Load(_ context.Context, resource string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.docs[resource]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(data), true, nil
}

// Update holds the write lock for the whole cycle, which serializes writers
// across all resources.
func (b *Backend) Update(ctx context.Context, resource string, fn document.MutateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	current, exists := b.docs[resource]
	next, err := fn(bytes.Clone(current), exists)
	if err != nil {
		return err
	}
	if next == nil {
		delete(b.docs, resource)
		return nil
	}
	b.docs[resource] = bytes.Clone(next)
	return nil
}
