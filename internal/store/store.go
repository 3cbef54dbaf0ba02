package store

import (
	"errors"
	"sync"
)

var (
	ErrNotFound    = errors.New("entity not found")
	ErrDuplicateID = errors.New("duplicate entity id")
	ErrEmptyID     = errors.New("empty entity id")
)

// Entity is anything addressable by a string id.
type Entity interface {
	Key() string
}

// Store is the authoritative in-memory list of one entity type.
// Insertion order is preserved and ids are unique. Concurrent writers
// are not reconciled: the last one to acquire the lock wins.
type Store[T Entity] struct {
	mu        sync.RWMutex
	items     []T
	listeners []func([]T)
}

func New[T Entity]() *Store[T] {
	return &Store[T]{}
}

// OnChange registers fn to receive a snapshot after every mutation.
// Listeners run synchronously after the lock is released.
func (s *Store[T]) OnChange(fn func([]T)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Filter returns the matching entities in store order.
func (s *Store[T]) Filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, it := range s.items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Reset overwrites the whole list. Nothing changes if items carry duplicate ids.
func (s *Store[T]) Reset(items []T) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		k := it.Key()
		if k == "" {
			return ErrEmptyID
		}
		if _, dup := seen[k]; dup {
			return ErrDuplicateID
		}
		seen[k] = struct{}{}
	}
	cp := make([]T, len(items))
	copy(cp, items)

	s.mu.Lock()
	s.items = cp
	snap, ls := s.copyLocked(), s.listeners
	s.mu.Unlock()
	notify(ls, snap)
	return nil
}

func (s *Store[T]) Append(item T) error {
	k := item.Key()
	if k == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	if s.indexLocked(k) >= 0 {
		s.mu.Unlock()
		return ErrDuplicateID
	}
	s.items = append(s.items, item)
	snap, ls := s.copyLocked(), s.listeners
	s.mu.Unlock()
	notify(ls, snap)
	return nil
}

// Replace swaps the entity stored under id, keeping its position.
func (s *Store[T]) Replace(id string, item T) error {
	return s.Update(id, func(T) T { return item })
}

// Update applies fn to the entity stored under id. fn may not move the
// entity onto an id that another entity already owns.
func (s *Store[T]) Update(id string, fn func(T) T) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	next := fn(s.items[i])
	k := next.Key()
	if k == "" {
		s.mu.Unlock()
		return ErrEmptyID
	}
	if j := s.indexLocked(k); j >= 0 && j != i {
		s.mu.Unlock()
		return ErrDuplicateID
	}
	s.items[i] = next
	snap, ls := s.copyLocked(), s.listeners
	s.mu.Unlock()
	notify(ls, snap)
	return nil
}

// Remove deletes id and reports whether it was present.
func (s *Store[T]) Remove(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	snap, ls := s.copyLocked(), s.listeners
	s.mu.Unlock()
	notify(ls, snap)
	return true
}

func (s *Store[T]) indexLocked(id string) int {
	for i, it := range s.items {
		if it.Key() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) copyLocked() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func notify[T any](ls []func([]T), snap []T) {
	for _, fn := range ls {
		fn(snap)
	}
}
