package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"investdesk/pkg/sentinel"
)

// note is a minimal record type exercising string, numeric, and date fields.
type note struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n note) RecordID() string { return n.ID }

type FileStoreSuite struct {
	suite.Suite
	dir   string
	store *FileStore[note]
	ctx   context.Context
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, new(FileStoreSuite))
}

func (s *FileStoreSuite) SetupTest() {
	s.dir = s.T().TempDir()
	store, err := NewFileStore[note](s.dir, "notes")
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func (s *FileStoreSuite) TestFirstReadInitializesEmptyCollection() {
	records, err := s.store.ReadAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(records)

	// The backing file now exists and holds an empty array.
	data, err := os.ReadFile(filepath.Join(s.dir, "notes.json"))
	s.Require().NoError(err)
	s.JSONEq("[]", string(data))
}

func (s *FileStoreSuite) TestRoundTripPreservesFieldsAndDates() {
	created := time.Date(2025, time.June, 2, 9, 15, 0, 0, time.UTC)
	rec := note{ID: "N-1", Body: "first", Amount: 1500000.50, CreatedAt: created}

	_, err := s.store.Create(s.ctx, rec)
	s.Require().NoError(err)

	// Reopen against the same file to force a cold read from disk.
	reopened, err := NewFileStore[note](s.dir, "notes")
	s.Require().NoError(err)

	records, err := reopened.ReadAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(rec, records[0])
	s.True(records[0].CreatedAt.Equal(created), "date field must survive as a time value")
}

func (s *FileStoreSuite) TestInsertionOrderPreserved() {
	for _, id := range []string{"N-1", "N-2", "N-3"} {
		_, err := s.store.Create(s.ctx, note{ID: id})
		s.Require().NoError(err)
	}
	records, err := s.store.ReadAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"N-1", "N-2", "N-3"}, []string{records[0].ID, records[1].ID, records[2].ID})
}

func (s *FileStoreSuite) TestFindOne() {
	_, err := s.store.Create(s.ctx, note{ID: "N-1", Body: "keep"})
	s.Require().NoError(err)

	found, err := s.store.FindOne(s.ctx, func(n note) bool { return n.ID == "N-1" })
	s.Require().NoError(err)
	s.Equal("keep", found.Body)

	_, err = s.store.FindOne(s.ctx, func(n note) bool { return n.ID == "N-404" })
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *FileStoreSuite) TestFindMany() {
	for i, body := range []string{"a", "b", "a"} {
		_, err := s.store.Create(s.ctx, note{ID: string(rune('1' + i)), Body: body})
		s.Require().NoError(err)
	}
	matches, err := s.store.FindMany(s.ctx, func(n note) bool { return n.Body == "a" })
	s.Require().NoError(err)
	s.Len(matches, 2)
}

func (s *FileStoreSuite) TestUpdateReplacesWholesale() {
	_, err := s.store.Create(s.ctx, note{ID: "N-1", Body: "old", Amount: 10})
	s.Require().NoError(err)

	updated, err := s.store.Update(s.ctx,
		func(n note) bool { return n.ID == "N-1" },
		note{ID: "N-1", Body: "new"})
	s.Require().NoError(err)
	s.Equal("new", updated.Body)
	s.Zero(updated.Amount, "replacement is wholesale, not a merge")

	_, err = s.store.Update(s.ctx,
		func(n note) bool { return n.ID == "N-404" },
		note{ID: "N-404"})
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *FileStoreSuite) TestDelete() {
	_, err := s.store.Create(s.ctx, note{ID: "N-1"})
	s.Require().NoError(err)

	removed, err := s.store.Delete(s.ctx, func(n note) bool { return n.ID == "N-1" })
	s.Require().NoError(err)
	s.True(removed)

	removed, err = s.store.Delete(s.ctx, func(n note) bool { return n.ID == "N-1" })
	s.Require().NoError(err)
	s.False(removed)
}

func (s *FileStoreSuite) TestCorruptFileFailsLoudly() {
	path := filepath.Join(s.dir, "notes.json")
	s.Require().NoError(os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := s.store.ReadAll(s.ctx)
	s.Require().ErrorIs(err, sentinel.ErrCorrupt)

	// Mutations refuse to run on a corrupt collection rather than clobbering it.
	_, err = s.store.Create(s.ctx, note{ID: "N-9"})
	s.Require().ErrorIs(err, sentinel.ErrCorrupt)
}
