package storage

import (
	"context"
	"sync"

	"investdesk/pkg/sentinel"
)

// InMemoryStore keeps the collection in process memory with the same
// semantics as FileStore. Unit tests and ephemeral deployments use it.
type InMemoryStore[T Record] struct {
	mu      sync.RWMutex
	records []T
}

func NewInMemoryStore[T Record]() *InMemoryStore[T] {
	return &InMemoryStore[T]{}
}

func (s *InMemoryStore[T]) ReadAll(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T{}, s.records...), nil
}

func (s *InMemoryStore[T]) FindOne(_ context.Context, match func(T) bool) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if match(rec) {
			return rec, nil
		}
	}
	var zero T
	return zero, sentinel.ErrNotFound
}

func (s *InMemoryStore[T]) FindMany(_ context.Context, match func(T) bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, rec := range s.records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *InMemoryStore[T]) Create(_ context.Context, rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *InMemoryStore[T]) Update(_ context.Context, match func(T) bool, rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if match(s.records[i]) {
			s.records[i] = rec
			return rec, nil
		}
	}
	var zero T
	return zero, sentinel.ErrNotFound
}

func (s *InMemoryStore[T]) Delete(_ context.Context, match func(T) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if match(s.records[i]) {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
