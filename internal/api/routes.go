// internal/api/routes.go
// Central route registration for all API endpoints

package api

import (
	"badminton-scheduler/internal/middleware"
	"badminton-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers authentication-related routes
func RegisterAuthRoutes(router *gin.RouterGroup, services *service.Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", HandleRegister(services.Auth))
		auth.POST("/login", HandleLogin(services.Auth))
		auth.POST("/logout", middleware.RequireAuth(services.Auth), HandleLogout(services.Auth))
		auth.POST("/refresh", HandleRefreshToken(services.Auth))
	}
}

// RegisterScheduleRoutes registers schedule-related routes
func RegisterScheduleRoutes(router *gin.RouterGroup, services *service.Container) {
	schedules := router.Group("/schedules")
	schedules.Use(middleware.RequireAuth(services.Auth))
	{
		schedules.POST("", HandleCreateSchedule(services.Schedule))
		schedules.GET("/:id", HandleGetSchedule(services.Schedule))
		schedules.POST("/:id/rounds/:roundId/toggle", HandleToggleRound(services.Schedule))
	}
}
