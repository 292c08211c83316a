// internal/analytics/analytics.go
// Fire-and-forget event logging to MongoDB.

package analytics

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service logs analytics events. A failure to log never propagates to
// the caller: analytics shouldn't break the request it's observing.
type Service struct {
	db     *mongo.Database
	logger *log.Logger
}

// NewService creates a new analytics service.
func NewService(db *mongo.Database, logger *log.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// LogEvent records an analytics event with an arbitrary data payload.
func (s *Service) LogEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	event := bson.M{
		"type":       eventType,
		"data":       data,
		"timestamp":  time.Now(),
		"created_at": time.Now(),
	}

	if _, err := s.db.Collection("analytics_events").InsertOne(ctx, event); err != nil {
		s.logger.Printf("Failed to log analytics event %s: %v", eventType, err)
	}
}

// ScheduleGenerated logs a schedule-generation event.
func (s *Service) ScheduleGenerated(ctx context.Context, scheduleID, organizerID string, roundCount int, warning string) {
	s.LogEvent(ctx, "schedule_generated", map[string]interface{}{
		"schedule_id":  scheduleID,
		"organizer_id": organizerID,
		"round_count":  roundCount,
		"warning":      warning,
	})
}

// RoundToggled logs a round-completion toggle event.
func (s *Service) RoundToggled(ctx context.Context, scheduleID, roundID string, completed bool) {
	s.LogEvent(ctx, "round_toggled", map[string]interface{}{
		"schedule_id": scheduleID,
		"round_id":    roundID,
		"completed":   completed,
	})
}
