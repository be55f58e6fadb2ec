package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"investdesk/pkg/sentinel"
)

// PostgresStore keeps each record kind in a shared documents table, one jsonb
// document per record, ordered by an insertion sequence. Predicate lookups
// still scan the kind's full collection; the table only buys durability and
// multi-process safety, not query capability.
type PostgresStore[T Record] struct {
	pool *pgxpool.Pool
	kind string
}

// Migrate creates the documents table. Safe to run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			kind      TEXT NOT NULL,
			record_id TEXT NOT NULL,
			position  BIGSERIAL,
			doc       JSONB NOT NULL,
			PRIMARY KEY (kind, record_id)
		)`)
	if err != nil {
		return fmt.Errorf("migrate documents table: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// NewPostgresStore creates a store for one record kind on the given pool.
func NewPostgresStore[T Record](pool *pgxpool.Pool, kind string) *PostgresStore[T] {
	return &PostgresStore[T]{pool: pool, kind: kind}
}

func (s *PostgresStore[T]) ReadAll(ctx context.Context) ([]T, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM documents WHERE kind = $1 ORDER BY position`, s.kind)
	if err != nil {
		return nil, fmt.Errorf("read %s documents: %w: %w", s.kind, sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	var records []T
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan %s document: %w: %w", s.kind, sentinel.ErrUnavailable, err)
		}
		var rec T
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("decode %s document: %w: %w", s.kind, sentinel.ErrCorrupt, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s documents: %w: %w", s.kind, sentinel.ErrUnavailable, err)
	}
	return records, nil
}

func (s *PostgresStore[T]) FindOne(ctx context.Context, match func(T) bool) (T, error) {
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

func (s *PostgresStore[T]) FindMany(ctx context.Context, match func(T) bool) ([]T, error) {
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

func (s *PostgresStore[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	doc, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("encode %s document: %w: %w", s.kind, sentinel.ErrCorrupt, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (kind, record_id, doc) VALUES ($1, $2, $3)`,
		s.kind, rec.RecordID(), doc)
	if err != nil {
		return zero, fmt.Errorf("insert %s document: %w: %w", s.kind, sentinel.ErrUnavailable, err)
	}
	return rec, nil
}

func (s *PostgresStore[T]) Update(ctx context.Context, match func(T) bool, rec T) (T, error) {
	var zero T
	current, err := s.FindOne(ctx, match)
	if err != nil {
		return zero, err
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("encode %s document: %w: %w", s.kind, sentinel.ErrCorrupt, err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET doc = $3 WHERE kind = $1 AND record_id = $2`,
		s.kind, current.RecordID(), doc)
	if err != nil {
		return zero, fmt.Errorf("update %s document: %w: %w", s.kind, sentinel.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return zero, sentinel.ErrNotFound
	}
	return rec, nil
}

func (s *PostgresStore[T]) Delete(ctx context.Context, match func(T) bool) (bool, error) {
	current, err := s.FindOne(ctx, match)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE kind = $1 AND record_id = $2`,
		s.kind, current.RecordID())
	if err != nil {
		return false, fmt.Errorf("delete %s document: %w: %w", s.kind, sentinel.ErrUnavailable, err)
	}
	return tag.RowsAffected() > 0, nil
}
