package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"investdesk/internal/storage"
	domainerrors "investdesk/pkg/domain-errors"
	"investdesk/pkg/requestcontext"
	"investdesk/pkg/sentinel"
)

func newTestTrail() (*Trail, storage.Store[Event]) {
	store := storage.NewInMemoryStore[Event]()
	return NewTrail(store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func TestRecordStampsIDTimeAndActor(t *testing.T) {
	trail, store := newTestTrail()
	now := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithActorID(requestcontext.WithTime(context.Background(), now), "EMP-001")

	trail.Record(ctx, Event{Entity: "offer", EntityID: "OFF-20250314-001", Action: "created"})

	events, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotEmpty(t, events[0].ID)
	require.True(t, events[0].At.Equal(now))
	require.Equal(t, "EMP-001", events[0].Actor)
}

func TestRecordKeepsExplicitActor(t *testing.T) {
	trail, store := newTestTrail()
	ctx := requestcontext.WithActorID(context.Background(), "EMP-001")

	trail.Record(ctx, Event{EntityID: "INQ-20250314-001", Action: "deleted", Actor: "EMP-009"})

	events, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "EMP-009", events[0].Actor)
}

func TestByEntityIDFiltersToOneRecord(t *testing.T) {
	trail, _ := newTestTrail()
	ctx := context.Background()

	trail.Record(ctx, Event{EntityID: "OFF-20250314-001", Action: "created"})
	trail.Record(ctx, Event{EntityID: "OFF-20250314-002", Action: "created"})
	trail.Record(ctx, Event{EntityID: "OFF-20250314-001", Action: "status_changed"})

	events, err := trail.ByEntityID(ctx, "OFF-20250314-001")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "created", events[0].Action)
	require.Equal(t, "status_changed", events[1].Action)
}

type brokenEventStore struct {
	storage.Store[Event]
}

func (brokenEventStore) FindMany(context.Context, func(Event) bool) ([]Event, error) {
	return nil, fmt.Errorf("read events: %w", sentinel.ErrUnavailable)
}

func TestByEntityIDTranslatesStorageFailure(t *testing.T) {
	trail := NewTrail(brokenEventStore{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := trail.ByEntityID(context.Background(), "OFF-20250314-001")
	require.Error(t, err)
	require.Equal(t, domainerrors.CodeStorageIO, domainerrors.CodeOf(err))
}
