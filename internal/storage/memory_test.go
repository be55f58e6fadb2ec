package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"investdesk/pkg/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore[note]
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore[note]()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) TestCreateAndFind() {
	_, err := s.store.Create(s.ctx, note{ID: "N-1", Body: "hello"})
	s.Require().NoError(err)

	found, err := s.store.FindOne(s.ctx, func(n note) bool { return n.ID == "N-1" })
	s.Require().NoError(err)
	s.Equal("hello", found.Body)
}

func (s *MemoryStoreSuite) TestFindOneAbsent() {
	_, err := s.store.FindOne(s.ctx, func(n note) bool { return true })
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdateFirstMatchOnly() {
	_, err := s.store.Create(s.ctx, note{ID: "N-1", Body: "a"})
	s.Require().NoError(err)
	_, err = s.store.Create(s.ctx, note{ID: "N-2", Body: "a"})
	s.Require().NoError(err)

	_, err = s.store.Update(s.ctx,
		func(n note) bool { return n.Body == "a" },
		note{ID: "N-1", Body: "b"})
	s.Require().NoError(err)

	records, err := s.store.ReadAll(s.ctx)
	s.Require().NoError(err)
	s.Equal("b", records[0].Body)
	s.Equal("a", records[1].Body, "only the first match is replaced")
}

func (s *MemoryStoreSuite) TestDeleteReportsRemoval() {
	_, err := s.store.Create(s.ctx, note{ID: "N-1"})
	s.Require().NoError(err)

	removed, err := s.store.Delete(s.ctx, func(n note) bool { return n.ID == "N-1" })
	s.Require().NoError(err)
	s.True(removed)

	removed, err = s.store.Delete(s.ctx, func(n note) bool { return n.ID == "N-1" })
	s.Require().NoError(err)
	s.False(removed)
}

func (s *MemoryStoreSuite) TestReadAllReturnsCopy() {
	_, err := s.store.Create(s.ctx, note{ID: "N-1", Body: "original"})
	s.Require().NoError(err)

	records, err := s.store.ReadAll(s.ctx)
	s.Require().NoError(err)
	records[0].Body = "mutated"

	fresh, err := s.store.ReadAll(s.ctx)
	s.Require().NoError(err)
	s.Equal("original", fresh[0].Body)
}
