package document

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrMalformed marks a stored document that cannot be decoded into the
// current shape even after upgrading.
var ErrMalformed = errors.New("malformed document")

func load[T any](ctx context.Context, backend Backend, resource string, chain Chain) (T, bool, error) {
	var out T
	data, exists, err := backend.Load(ctx, resource)
	if err != nil {
		return out, false, err
	}
	if !exists {
		return out, false, nil
	}
	return decode[T](resource, data, chain)
}

// decode reports exists=false when the upgraded document is null.
func decode[T any](resource string, data []byte, chain Chain) (T, bool, error) {
	var out T
	raw, err := decodeRaw(data)
	if err != nil {
		return out, false, errors.Mark(errors.Wrapf(err, "decode %s", resource), ErrMalformed)
	}
	raw, _ = chain.Upgrade(raw)
	if raw == nil {
		return out, false, nil
	}
	if err := convert(raw, &out); err != nil {
		return out, false, errors.Mark(errors.Wrapf(err, "convert %s", resource), ErrMalformed)
	}
	return out, true, nil
}

// Collection is an id-keyed list of records stored as one JSON array.
type Collection[T any] struct {
	backend  Backend
	resource string
	chain    Chain
	idOf     func(T) string
}

func NewCollection[T any](backend Backend, resource string, idOf func(T) string) *Collection[T] {
	return &Collection[T]{
		backend:  backend,
		resource: resource,
		chain:    ChainFor(resource),
		idOf:     idOf,
	}
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	items, _, err := load[[]T](ctx, c.backend, c.resource, c.chain)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := c.List(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if c.idOf(item) == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Insert appends item to the end of the collection.
func (c *Collection[T]) Insert(ctx context.Context, item T) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// Replace swaps the record with the same id in place. It reports false and
// writes nothing when no record matches.
func (c *Collection[T]) Replace(ctx context.Context, item T) (bool, error) {
	id := c.idOf(item)
	found := false
	err := c.mutate(ctx, func(items []T) ([]T, error) {
		idx := slices.IndexFunc(items, func(v T) bool { return c.idOf(v) == id })
		if idx < 0 {
			return nil, ErrUnchanged
		}
		items[idx] = item
		found = true
		return items, nil
	})
	return found, err
}

// Delete removes the record with id. It reports false and writes nothing when
// the collection length would not change.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := c.mutate(ctx, func(items []T) ([]T, error) {
		before := len(items)
		items = slices.DeleteFunc(items, func(v T) bool { return c.idOf(v) == id })
		if len(items) == before {
			return nil, ErrUnchanged
		}
		found = true
		return items, nil
	})
	return found, err
}

// Rewrite stores the collection in its current shape and returns the
// record count.
func (c *Collection[T]) Rewrite(ctx context.Context) (int, error) {
	count := 0
	err := c.mutate(ctx, func(items []T) ([]T, error) {
		count = len(items)
		return items, nil
	})
	return count, err
}

// ReplaceAll stores items when the collection is empty. It reports whether
// anything was written.
func (c *Collection[T]) ReplaceAll(ctx context.Context, items []T, onlyIfEmpty bool) (bool, error) {
	written := false
	err := c.mutate(ctx, func(current []T) ([]T, error) {
		if onlyIfEmpty && len(current) > 0 {
			return nil, ErrUnchanged
		}
		written = true
		return slices.Clone(items), nil
	})
	return written, err
}

func (c *Collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	err := c.backend.Update(ctx, c.resource, func(current []byte, exists bool) ([]byte, error) {
		var items []T
		if exists {
			decoded, _, err := decode[[]T](c.resource, current, c.chain)
			if err != nil {
				return nil, err
			}
			items = decoded
		}
		if items == nil {
			items = []T{}
		}

		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []T{}
		}
		return Marshal(next)
	})
	if errors.Is(err, ErrUnchanged) {
		return nil
	}
	return err
}

// Singleton is a resource holding at most one document.
type Singleton[T any] struct {
	backend  Backend
	resource string
	chain    Chain
}

func NewSingleton[T any](backend Backend, resource string) *Singleton[T] {
	return &Singleton[T]{
		backend:  backend,
		resource: resource,
		chain:    ChainFor(resource),
	}
}

func (s *Singleton[T]) Get(ctx context.Context) (T, bool, error) {
	return load[T](ctx, s.backend, s.resource, s.chain)
}

func (s *Singleton[T]) Save(ctx context.Context, doc T) error {
	data, err := Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "encode %s", s.resource)
	}
	return s.backend.Update(ctx, s.resource, func([]byte, bool) ([]byte, error) {
		return data, nil
	})
}

// Update stores the result of fn applied to the current document in one
// read-modify-write cycle.
func (s *Singleton[T]) Update(ctx context.Context, fn func(current T, exists bool) (T, error)) (T, error) {
	var next T
	err := s.backend.Update(ctx, s.resource, func(raw []byte, exists bool) ([]byte, error) {
		var current T
		found := false
		if exists {
			doc, ok, err := decode[T](s.resource, raw, s.chain)
			if err != nil {
				return nil, err
			}
			current, found = doc, ok
		}

		updated, err := fn(current, found)
		if err != nil {
			return nil, err
		}
		next = updated
		return Marshal(updated)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return next, nil
}

// SaveIfAbsent stores doc only when no document exists yet.
func (s *Singleton[T]) SaveIfAbsent(ctx context.Context, doc T) (bool, error) {
	data, err := Marshal(doc)
	if err != nil {
		return false, errors.Wrapf(err, "encode %s", s.resource)
	}
	written := false
	err = s.backend.Update(ctx, s.resource, func(current []byte, exists bool) ([]byte, error) {
		if exists {
			if _, ok, err := decode[T](s.resource, current, s.chain); err != nil || ok {
				return nil, ErrUnchanged
			}
		}
		written = true
		return data, nil
	})
	if errors.Is(err, ErrUnchanged) {
		return false, nil
	}
	return written, err
}

func (s *Singleton[T]) Clear(ctx context.Context) error {
	err := s.backend.Update(ctx, s.resource, func(_ []byte, exists bool) ([]byte, error) {
		if !exists {
			return nil, ErrUnchanged
		}
		return nil, nil
	})
	if errors.Is(err, ErrUnchanged) {
		return nil
	}
	return err
}

// Rewrite stores the document in its current shape. It reports false when
// there is no document.
func (s *Singleton[T]) Rewrite(ctx context.Context) (bool, error) {
	found := false
	err := s.backend.Update(ctx, s.resource, func(current []byte, exists bool) ([]byte, error) {
		if !exists {
			return nil, ErrUnchanged
		}
		doc, ok, err := decode[T](s.resource, current, s.chain)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		found = true
		return Marshal(doc)
	})
	if errors.Is(err, ErrUnchanged) {
		return false, nil
	}
	return found, err
}
