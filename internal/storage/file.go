package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"investdesk/pkg/sentinel"
)

// FileStore persists one record kind as a single pretty-printed JSON array.
// Every mutation reads the full collection, applies the change in memory, and
// rewrites the whole file. That keeps the format trivially inspectable and is
// plenty for administrative-system collection sizes.
//
// A missing file means first-time initialization and yields an empty
// collection. Any other read failure, including malformed JSON, surfaces as an
// error instead of masquerading as "no records".
type FileStore[T Record] struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by <dir>/<name>.json, creating dir if
// needed.
func NewFileStore[T Record](dir, name string) (*FileStore[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w: %w", dir, sentinel.ErrUnavailable, err)
	}
	return &FileStore[T]{path: filepath.Join(dir, name+".json")}, nil
}

func (s *FileStore[T]) ReadAll(_ context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *FileStore[T]) FindOne(ctx context.Context, match func(T) bool) (T, error) {
	var zero T
	records, err := s.ReadAll(ctx)
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if match(rec) {
			return rec, nil
		}
	}
	return zero, sentinel.ErrNotFound
}

func (s *FileStore[T]) FindMany(ctx context.Context, match func(T) bool) ([]T, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []T
	for _, rec := range records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *FileStore[T]) Create(_ context.Context, rec T) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return zero, err
	}
	records = append(records, rec)
	if err := s.writeLocked(records); err != nil {
		return zero, err
	}
	return rec, nil
}

func (s *FileStore[T]) Update(_ context.Context, match func(T) bool, rec T) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return zero, err
	}
	for i := range records {
		if match(records[i]) {
			records[i] = rec
			if err := s.writeLocked(records); err != nil {
				return zero, err
			}
			return rec, nil
		}
	}
	return zero, sentinel.ErrNotFound
}

func (s *FileStore[T]) Delete(_ context.Context, match func(T) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return false, err
	}
	for i := range records {
		if match(records[i]) {
			records = append(records[:i], records[i+1:]...)
			if err := s.writeLocked(records); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *FileStore[T]) readLocked() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		// First-time initialization: materialize an empty collection so the
		// file exists for inspection.
		if err := s.writeLocked(nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", s.path, sentinel.ErrUnavailable, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", s.path, sentinel.ErrCorrupt, err)
	}
	return records, nil
}

func (s *FileStore[T]) writeLocked(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w: %w", s.path, sentinel.ErrCorrupt, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w: %w", s.path, sentinel.ErrUnavailable, err)
	}
	return nil
}
