package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/store"
)

func NewMemoryRepository() *Repository {
	return &Repository{
		Products: &memTable[catalog.Product]{},
		Videos:   &memTable[catalog.VideoContent]{},
		Orders:   &memTable[catalog.Order]{},
		Docs:     &memDocs{m: map[string][]byte{}},
	}
}

type memTable[T store.Entity] struct {
	mu    sync.RWMutex
	items []T
}

func (t *memTable[T]) List(_ context.Context, page, limit int) ([]T, int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := len(t.items)
	if limit <= 0 {
		return append([]T(nil), t.items...), total, nil
	}
	start := min(max(page-1, 0)*limit, total)
	end := min(start+limit, total)
	return append([]T(nil), t.items[start:end]...), total, nil
}

func (t *memTable[T]) Get(_ context.Context, id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.index(id); i >= 0 {
		return t.items[i], nil
	}
	var zero T
	return zero, ErrNotFound
}

func (t *memTable[T]) Insert(_ context.Context, item T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.index(item.Key()) >= 0 {
		return ErrAlreadyExists
	}
	t.items = append(t.items, item)
	return nil
}

func (t *memTable[T]) Update(_ context.Context, id string, fn func(T) (T, error)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero T
	i := t.index(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	next, err := fn(t.items[i])
	if err != nil {
		return zero, err
	}
	t.items[i] = next
	return next, nil
}

func (t *memTable[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(id)
	if i < 0 {
		return ErrNotFound
	}
	t.items = append(t.items[:i:i], t.items[i+1:]...)
	return nil
}

func (t *memTable[T]) index(id string) int {
	for i, it := range t.items {
		if it.Key() == id {
			return i
		}
	}
	return -1
}

// memDocs stores JSON so callers never share memory with the repository.
type memDocs struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func (d *memDocs) Load(_ context.Context, name string, out any) error {
	d.mu.RLock()
	b, ok := d.m[name]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("document %s: %w", name, ErrNotFound)
	}
	return json.Unmarshal(b, out)
}

func (d *memDocs) Save(_ context.Context, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.m[name] = b
	d.mu.Unlock()
	return nil
}
