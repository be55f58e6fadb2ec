package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusProposal.CanTransitionTo(StatusDraft))
	assert.True(t, StatusProposal.CanTransitionTo(StatusWait))
	assert.True(t, StatusProposal.CanTransitionTo(StatusRejected))
	assert.False(t, StatusProposal.CanTransitionTo(StatusSent))

	assert.True(t, StatusDraft.CanTransitionTo(StatusWait))
	assert.False(t, StatusDraft.CanTransitionTo(StatusSent))

	assert.True(t, StatusWait.CanTransitionTo(StatusSent))
	assert.False(t, StatusWait.CanTransitionTo(StatusAccepted))

	assert.True(t, StatusSent.CanTransitionTo(StatusAccepted))
	assert.True(t, StatusSent.CanTransitionTo(StatusExpired))
	assert.False(t, StatusSent.CanTransitionTo(StatusConfirmed))

	assert.True(t, StatusAccepted.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusAccepted.CanTransitionTo(StatusRejected))
}

func TestTerminalStatuses(t *testing.T) {
	for _, status := range []Status{StatusConfirmed, StatusRejected, StatusExpired} {
		assert.True(t, status.IsTerminal(), string(status))
		for _, next := range []Status{StatusProposal, StatusDraft, StatusWait, StatusSent, StatusAccepted, StatusConfirmed, StatusRejected, StatusExpired} {
			assert.False(t, status.CanTransitionTo(next), "%s -> %s", status, next)
		}
	}
	for _, status := range []Status{StatusProposal, StatusDraft, StatusWait, StatusSent, StatusAccepted} {
		assert.False(t, status.IsTerminal(), string(status))
		assert.True(t, status.CanTransitionTo(StatusRejected), "%s -> Rejected", status)
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusWait.Valid())
	assert.False(t, Status("Pending").Valid())
	assert.False(t, Status("").Valid())
}
