// internal/store/schedule_store.go
// Redis-backed key/value store for generated schedules (spec §6):
// keyed by scheduleId, supports fetch and an idempotent-per-call round
// completion toggle.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"badminton-scheduler/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrScheduleNotFound is returned when a scheduleId has no stored schedule.
var ErrScheduleNotFound = errors.New("schedule not found")

// ErrRoundNotFound is returned when a roundId does not exist in a schedule.
var ErrRoundNotFound = errors.New("round not found")

func scheduleKey(id string) string {
	return fmt.Sprintf("schedule:%s", id)
}

// ScheduleStore persists generated schedules in Redis as JSON blobs.
type ScheduleStore struct {
	client *redis.Client
}

// NewScheduleStore creates a new schedule store.
func NewScheduleStore(client *redis.Client) *ScheduleStore {
	return &ScheduleStore{client: client}
}

// Save writes a schedule, overwriting any prior value for its id.
func (s *ScheduleStore) Save(ctx context.Context, sched *models.StoredSchedule) error {
	data, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	if err := s.client.Set(ctx, scheduleKey(sched.ScheduleID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

// Get retrieves a schedule by id.
func (s *ScheduleStore) Get(ctx context.Context, id string) (*models.StoredSchedule, error) {
	data, err := s.client.Get(ctx, scheduleKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	var sched models.StoredSchedule
	if err := json.Unmarshal(data, &sched); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
	}
	return &sched, nil
}

// ToggleRound flips the Completed flag on the named round and re-saves
// the schedule. Each call inverts the flag; it is not idempotent across
// repeated calls (spec §6).
func (s *ScheduleStore) ToggleRound(ctx context.Context, scheduleID, roundID string) (*models.StoredSchedule, error) {
	sched, err := s.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := flipRoundCompleted(sched, roundID); err != nil {
		return nil, err
	}

	if err := s.Save(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// flipRoundCompleted inverts the Completed flag of the named round in
// place. Pure and independent of Redis so it can be exercised directly
// by tests.
func flipRoundCompleted(sched *models.StoredSchedule, roundID string) error {
	for i := range sched.Rounds {
		if sched.Rounds[i].ID == roundID {
			sched.Rounds[i].Completed = !sched.Rounds[i].Completed
			return nil
		}
	}
	return ErrRoundNotFound
}
