// internal/api/auth_handlers.go
// Authentication-related HTTP handlers

package api

import (
	"net/http"

	"badminton-scheduler/internal/models"
	"badminton-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

// HandleRegister handles organizer registration
func HandleRegister(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		organizer, tokens, err := authService.Register(c.Request.Context(), req)
		if err != nil {
			if err == service.ErrEmailAlreadyExists {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register organizer"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"organizer": organizer,
			"auth":      tokens,
		})
	}
}

// HandleLogin handles organizer login
func HandleLogin(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		organizer, tokens, err := authService.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if err == service.ErrInvalidCredentials {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"organizer": organizer,
			"auth":      tokens,
		})
	}
}

// HandleLogout handles organizer logout
func HandleLogout(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		c.ShouldBindJSON(&req)

		authService.Logout(c.Request.Context(), req.RefreshToken)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// HandleRefreshToken handles token refresh
func HandleRefreshToken(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		tokens, err := authService.RefreshToken(c.Request.Context(), req.RefreshToken)
		if err != nil {
			if err == service.ErrInvalidToken {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"auth": tokens})
	}
}
