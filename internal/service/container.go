// internal/service/container.go
// Service container wires repositories, the scheduling engine, and
// backing stores into the business-logic services handlers depend on.

package service

import (
	"log"

	"badminton-scheduler/internal/analytics"
	"badminton-scheduler/internal/config"
	"badminton-scheduler/internal/database"
	"badminton-scheduler/internal/idgen"
	"badminton-scheduler/internal/store"
	"badminton-scheduler/internal/ws"
)

// Container holds all service instances and provides them to handlers.
type Container struct {
	Auth      *AuthService
	Schedule  *ScheduleService
	Cache     *CacheService
	Analytics *analytics.Service
	Hub       *ws.Hub
}

// NewContainer creates a new service container with all dependencies.
func NewContainer(db *database.Connections, cfg *config.Config, logger *log.Logger) *Container {
	organizerRepo := store.NewOrganizerRepository(db.MySQL)
	scheduleRepo := store.NewScheduleStore(db.Redis)

	cache := NewCacheService(db.Redis, logger)

	var analyticsSvc *analytics.Service
	if cfg.Features.EnableAnalytics {
		analyticsSvc = analytics.NewService(db.MongoDB, logger)
	}

	var hub *ws.Hub
	if cfg.Features.EnableWebSocket {
		hub = ws.NewHub(logger)
	}

	ids := idgen.UUIDGenerator{}
	auth := NewAuthService(organizerRepo, cfg.Auth, cache, ids, logger)
	schedule := NewScheduleService(scheduleRepo, ids, analyticsSvc, hub, logger)

	return &Container{
		Auth:      auth,
		Schedule:  schedule,
		Cache:     cache,
		Analytics: analyticsSvc,
		Hub:       hub,
	}
}
