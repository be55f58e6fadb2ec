// Package audit keeps a persisted trail of workflow transitions. Recording is
// best-effort: a failed audit write is logged but never fails the operation
// it describes.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"investdesk/internal/storage"
	domainerrors "investdesk/pkg/domain-errors"
	"investdesk/pkg/requestcontext"
)

// Event describes one workflow action on one record.
type Event struct {
	ID       string    `json:"id"`
	Entity   string    `json:"entity"`   // "inquiry" or "offer"
	EntityID string    `json:"entityId"` // e.g. INQ-20250314-001
	Action   string    `json:"action"`   // "created", "status_changed", "deleted"
	From     string    `json:"from,omitempty"`
	To       string    `json:"to,omitempty"`
	Actor    string    `json:"actor,omitempty"`
	At       time.Time `json:"at"`
}

func (e Event) RecordID() string { return e.ID }

// Trail records and lists audit events.
type Trail struct {
	events storage.Store[Event]
	logger *slog.Logger
}

// NewTrail constructs a trail over the given event store.
func NewTrail(events storage.Store[Event], logger *slog.Logger) *Trail {
	if logger == nil {
		logger = slog.Default()
	}
	return &Trail{events: events, logger: logger}
}

// Record persists the event, assigning its ID and timestamp.
func (t *Trail) Record(ctx context.Context, event Event) {
	event.ID = uuid.NewString()
	event.At = requestcontext.Now(ctx)
	if event.Actor == "" {
		event.Actor = requestcontext.ActorID(ctx)
	}
	if _, err := t.events.Create(ctx, event); err != nil {
		t.logger.ErrorContext(ctx, "failed to record audit event",
			"entity", event.Entity,
			"entity_id", event.EntityID,
			"action", event.Action,
			"error", err.Error(),
		)
	}
}

// ByEntityID returns the events recorded for one record, oldest first.
func (t *Trail) ByEntityID(ctx context.Context, entityID string) ([]Event, error) {
	events, err := t.events.FindMany(ctx, func(e Event) bool { return e.EntityID == entityID })
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorageIO, "failed to read audit events")
	}
	return events, nil
}
