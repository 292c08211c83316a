// internal/models/schedule.go
// Request/response shapes for the schedule HTTP surface. The engine's
// own types (internal/scheduler) stay transport-agnostic; these wrap
// them with the host metadata (scheduleId, ownership, persistence).

package models

import (
	"time"

	"badminton-scheduler/internal/scheduler"
)

// CreateScheduleRequest is the body of POST /api/v1/schedules.
type CreateScheduleRequest struct {
	Players   []string `json:"players" binding:"required,min=1"`
	Courts    int      `json:"courts"`
	MatchType string   `json:"matchType" binding:"required,oneof=singles doubles"`
}

// StoredSchedule is what ScheduleStore persists and the API returns:
// the engine's Schedule plus host-assigned identity and ownership.
type StoredSchedule struct {
	ScheduleID  string            `json:"scheduleId"`
	OrganizerID string            `json:"organizerId"`
	Rounds      []scheduler.Round `json:"rounds"`
	Warning     string            `json:"warning,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}
