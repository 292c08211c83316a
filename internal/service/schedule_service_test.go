package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"

	"badminton-scheduler/internal/models"
	"badminton-scheduler/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduleStore is an in-memory stand-in for *store.ScheduleStore.
type fakeScheduleStore struct {
	mu   sync.Mutex
	data map[string]*models.StoredSchedule
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{data: make(map[string]*models.StoredSchedule)}
}

func (f *fakeScheduleStore) Save(ctx context.Context, sched *models.StoredSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[sched.ScheduleID] = sched
	return nil
}

func (f *fakeScheduleStore) Get(ctx context.Context, id string) (*models.StoredSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sched, ok := f.data[id]
	if !ok {
		return nil, store.ErrScheduleNotFound
	}
	return sched, nil
}

func (f *fakeScheduleStore) ToggleRound(ctx context.Context, scheduleID, roundID string) (*models.StoredSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sched, ok := f.data[scheduleID]
	if !ok {
		return nil, store.ErrScheduleNotFound
	}
	for i := range sched.Rounds {
		if sched.Rounds[i].ID == roundID {
			sched.Rounds[i].Completed = !sched.Rounds[i].Completed
			return sched, nil
		}
	}
	return nil, store.ErrRoundNotFound
}

// sequentialIDs hands out deterministic, inspectable ids.
type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id%d", s.n)
}

func testLogger() *log.Logger {
	return log.New(os.Stdout, "test: ", 0)
}

func TestScheduleServiceGeneratePersistsAndReturns(t *testing.T) {
	fakeStore := newFakeScheduleStore()
	svc := NewScheduleService(fakeStore, &sequentialIDs{}, nil, nil, testLogger())

	req := models.CreateScheduleRequest{
		Players:   []string{"A", "B", "C", "D", "E"},
		Courts:    1,
		MatchType: "singles",
	}

	stored, err := svc.Generate(context.Background(), "org-1", req)
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "org-1", stored.OrganizerID)
	assert.NotEmpty(t, stored.ScheduleID)
	assert.NotEmpty(t, stored.Rounds)

	fromStore, err := fakeStore.Get(context.Background(), stored.ScheduleID)
	require.NoError(t, err)
	assert.Equal(t, stored.ScheduleID, fromStore.ScheduleID)
}

func TestScheduleServiceGeneratePropagatesValidationError(t *testing.T) {
	fakeStore := newFakeScheduleStore()
	svc := NewScheduleService(fakeStore, &sequentialIDs{}, nil, nil, testLogger())

	req := models.CreateScheduleRequest{
		Players:   []string{"A", "B"},
		Courts:    1,
		MatchType: "singles",
	}

	_, err := svc.Generate(context.Background(), "org-1", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unique players")
}

func TestScheduleServiceGetEnforcesOwnership(t *testing.T) {
	fakeStore := newFakeScheduleStore()
	svc := NewScheduleService(fakeStore, &sequentialIDs{}, nil, nil, testLogger())

	stored, err := svc.Generate(context.Background(), "org-1", models.CreateScheduleRequest{
		Players:   []string{"A", "B", "C", "D", "E"},
		Courts:    1,
		MatchType: "singles",
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), stored.ScheduleID, "org-2")
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(context.Background(), stored.ScheduleID, "org-1")
	require.NoError(t, err)
	assert.Equal(t, stored.ScheduleID, got.ScheduleID)
}

func TestScheduleServiceGetUnknownIDReturnsNotFound(t *testing.T) {
	fakeStore := newFakeScheduleStore()
	svc := NewScheduleService(fakeStore, &sequentialIDs{}, nil, nil, testLogger())

	_, err := svc.Get(context.Background(), "does-not-exist", "org-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleServiceToggleRoundFlipsCompletedAndEnforcesOwnership(t *testing.T) {
	fakeStore := newFakeScheduleStore()
	svc := NewScheduleService(fakeStore, &sequentialIDs{}, nil, nil, testLogger())

	stored, err := svc.Generate(context.Background(), "org-1", models.CreateScheduleRequest{
		Players:   []string{"A", "B", "C", "D", "E"},
		Courts:    1,
		MatchType: "singles",
	})
	require.NoError(t, err)
	roundID := stored.Rounds[0].ID

	_, err = svc.ToggleRound(context.Background(), stored.ScheduleID, roundID, "org-2")
	assert.ErrorIs(t, err, ErrForbidden)

	toggled, err := svc.ToggleRound(context.Background(), stored.ScheduleID, roundID, "org-1")
	require.NoError(t, err)
	assert.True(t, toggled.Rounds[0].Completed)

	toggledAgain, err := svc.ToggleRound(context.Background(), stored.ScheduleID, roundID, "org-1")
	require.NoError(t, err)
	assert.False(t, toggledAgain.Rounds[0].Completed)
}
