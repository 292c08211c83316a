// internal/service/schedule_service.go
// Orchestrates the scheduling engine with persistence, analytics, and
// realtime broadcast: the host-side glue the engine itself (spec §5)
// is forbidden from touching.

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"badminton-scheduler/internal/analytics"
	"badminton-scheduler/internal/models"
	"badminton-scheduler/internal/scheduler"
	"badminton-scheduler/internal/store"
	"badminton-scheduler/internal/ws"
)

// scheduleStore is the persistence seam ScheduleService depends on. The
// real implementation is *store.ScheduleStore (Redis-backed); tests
// substitute an in-memory fake.
type scheduleStore interface {
	Save(ctx context.Context, sched *models.StoredSchedule) error
	Get(ctx context.Context, id string) (*models.StoredSchedule, error)
	ToggleRound(ctx context.Context, scheduleID, roundID string) (*models.StoredSchedule, error)
}

// ScheduleService generates, persists, and publishes badminton schedules.
type ScheduleService struct {
	store     scheduleStore
	ids       scheduler.IDGenerator
	analytics *analytics.Service
	hub       *ws.Hub
	logger    *log.Logger
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(st scheduleStore, ids scheduler.IDGenerator, analyticsSvc *analytics.Service, hub *ws.Hub, logger *log.Logger) *ScheduleService {
	return &ScheduleService{store: st, ids: ids, analytics: analyticsSvc, hub: hub, logger: logger}
}

// Generate runs the scheduling engine for an organizer's request,
// persists the result, and fans out the creation event.
func (s *ScheduleService) Generate(ctx context.Context, organizerID string, req models.CreateScheduleRequest) (*models.StoredSchedule, error) {
	matchType := scheduler.Singles
	if req.MatchType == "doubles" {
		matchType = scheduler.Doubles
	}

	sched, err := scheduler.GenerateSchedule(req.Players, req.Courts, matchType, s.ids)
	if err != nil {
		return nil, err
	}

	stored := &models.StoredSchedule{
		ScheduleID:  s.ids.NewID(),
		OrganizerID: organizerID,
		Rounds:      sched.Rounds,
		Warning:     sched.Warning,
		CreatedAt:   time.Now(),
	}

	if err := s.store.Save(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to persist schedule: %w", err)
	}

	if s.analytics != nil {
		go s.analytics.ScheduleGenerated(context.Background(), stored.ScheduleID, organizerID, len(stored.Rounds), stored.Warning)
	}
	if s.hub != nil {
		s.hub.BroadcastScheduleUpdate(stored.ScheduleID, "schedule.generated", stored)
	}

	return stored, nil
}

// Get retrieves a stored schedule by id, checking organizer ownership.
func (s *ScheduleService) Get(ctx context.Context, scheduleID, organizerID string) (*models.StoredSchedule, error) {
	stored, err := s.store.Get(ctx, scheduleID)
	if err != nil {
		if err == store.ErrScheduleNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if stored.OrganizerID != organizerID {
		return nil, ErrForbidden
	}
	return stored, nil
}

// ToggleRound flips a round's completion flag and fans out the update.
func (s *ScheduleService) ToggleRound(ctx context.Context, scheduleID, roundID, organizerID string) (*models.StoredSchedule, error) {
	existing, err := s.store.Get(ctx, scheduleID)
	if err != nil {
		if err == store.ErrScheduleNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if existing.OrganizerID != organizerID {
		return nil, ErrForbidden
	}

	stored, err := s.store.ToggleRound(ctx, scheduleID, roundID)
	if err != nil {
		if err == store.ErrRoundNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var completed bool
	for _, r := range stored.Rounds {
		if r.ID == roundID {
			completed = r.Completed
			break
		}
	}

	if s.analytics != nil {
		go s.analytics.RoundToggled(context.Background(), scheduleID, roundID, completed)
	}
	if s.hub != nil {
		s.hub.BroadcastScheduleUpdate(scheduleID, "round.toggled", stored)
	}

	return stored, nil
}
