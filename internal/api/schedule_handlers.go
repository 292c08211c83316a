// internal/api/schedule_handlers.go
// Schedule generation and round-toggle HTTP handlers (spec §6 host
// boundary: request/response shapes, status codes, and persistence
// are this layer's job — the engine in internal/scheduler never sees
// an HTTP context).

package api

import (
	"errors"
	"net/http"

	"badminton-scheduler/internal/models"
	"badminton-scheduler/internal/scheduler"
	"badminton-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

// HandleCreateSchedule generates a new schedule for the authenticated organizer.
func HandleCreateSchedule(scheduleService *service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		organizerID := c.GetString("organizer_id")

		var req models.CreateScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		stored, err := scheduleService.Generate(c.Request.Context(), organizerID, req)
		if err != nil {
			if errors.Is(err, scheduler.ErrInvalidPlayers) || errors.Is(err, scheduler.ErrInvalidCourts) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate schedule"})
			return
		}

		c.JSON(http.StatusCreated, toScheduleResponse(stored))
	}
}

// HandleGetSchedule retrieves a previously generated schedule.
func HandleGetSchedule(scheduleService *service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		organizerID := c.GetString("organizer_id")
		scheduleID := c.Param("id")

		stored, err := scheduleService.Get(c.Request.Context(), scheduleID, organizerID)
		if err != nil {
			switch err {
			case service.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
			case service.ErrForbidden:
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve schedule"})
			}
			return
		}

		c.JSON(http.StatusOK, toScheduleResponse(stored))
	}
}

// HandleToggleRound flips a round's completion flag.
func HandleToggleRound(scheduleService *service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		organizerID := c.GetString("organizer_id")
		scheduleID := c.Param("id")
		roundID := c.Param("roundId")

		stored, err := scheduleService.ToggleRound(c.Request.Context(), scheduleID, roundID, organizerID)
		if err != nil {
			switch err {
			case service.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "Schedule or round not found"})
			case service.ErrForbidden:
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle round"})
			}
			return
		}

		c.JSON(http.StatusOK, toScheduleResponse(stored))
	}
}

// toScheduleResponse shapes the stored schedule into the host-visible
// contract of spec §6.
func toScheduleResponse(stored *models.StoredSchedule) gin.H {
	return gin.H{
		"scheduleId": stored.ScheduleID,
		"rounds":     stored.Rounds,
		"warning":    stored.Warning,
	}
}
