package store

import (
	"testing"

	"badminton-scheduler/internal/models"
	"badminton-scheduler/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleKeyNamespacesByID(t *testing.T) {
	assert.Equal(t, "schedule:abc-123", scheduleKey("abc-123"))
}

func TestFlipRoundCompletedTogglesMatchingRound(t *testing.T) {
	sched := &models.StoredSchedule{
		Rounds: []scheduler.Round{
			{ID: "r1", Completed: false},
			{ID: "r2", Completed: false},
		},
	}

	require.NoError(t, flipRoundCompleted(sched, "r2"))
	assert.False(t, sched.Rounds[0].Completed)
	assert.True(t, sched.Rounds[1].Completed)

	require.NoError(t, flipRoundCompleted(sched, "r2"))
	assert.False(t, sched.Rounds[1].Completed, "a second flip must invert again, not stay set")
}

func TestFlipRoundCompletedUnknownRoundErrors(t *testing.T) {
	sched := &models.StoredSchedule{Rounds: []scheduler.Round{{ID: "r1"}}}

	err := flipRoundCompleted(sched, "does-not-exist")
	assert.ErrorIs(t, err, ErrRoundNotFound)
}
