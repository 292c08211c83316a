// internal/service/auth_service.go
// Organizer registration, login, and token lifecycle.

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"badminton-scheduler/internal/auth"
	"badminton-scheduler/internal/config"
	"badminton-scheduler/internal/models"
	"badminton-scheduler/internal/scheduler"

	"golang.org/x/crypto/bcrypt"
)

// organizerRepository is the persistence seam AuthService depends on.
// The real implementation is *store.OrganizerRepository (MySQL); tests
// substitute an in-memory fake.
type organizerRepository interface {
	Create(ctx context.Context, o *models.Organizer) error
	GetByEmail(ctx context.Context, email string) (*models.Organizer, error)
	GetByID(ctx context.Context, id string) (*models.Organizer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// tokenCache is the refresh-token cache seam AuthService depends on.
// The real implementation is *CacheService (Redis); tests substitute an
// in-memory fake.
type tokenCache interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
}

// AuthService handles organizer authentication and session tokens.
type AuthService struct {
	repo   organizerRepository
	cfg    config.AuthConfig
	cache  tokenCache
	ids    scheduler.IDGenerator
	logger *log.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(repo organizerRepository, cfg config.AuthConfig, cache tokenCache, ids scheduler.IDGenerator, logger *log.Logger) *AuthService {
	return &AuthService{repo: repo, cfg: cfg, cache: cache, ids: ids, logger: logger}
}

// Register creates a new organizer account and issues a token pair.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Organizer, *models.TokenPair, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, nil, ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	organizer := &models.Organizer{
		ID:           s.ids.NewID(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		Name:         req.Name,
		Role:         models.RoleOrganizer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, organizer); err != nil {
		return nil, nil, fmt.Errorf("failed to create organizer: %w", err)
	}

	tokens, err := s.generateTokenPair(organizer)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	organizer.PasswordHash = ""
	return organizer, tokens, nil
}

// Login authenticates an organizer and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Organizer, *models.TokenPair, error) {
	organizer, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(organizer.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokenPair(organizer)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	organizer.PasswordHash = ""
	return organizer, tokens, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	cacheKey := refreshCacheKey(refreshToken)
	var organizerID string
	if err := s.cache.Get(cacheKey, &organizerID); err != nil {
		return nil, ErrInvalidToken
	}

	organizer, err := s.repo.GetByID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organizer: %w", err)
	}

	s.cache.Delete(cacheKey)
	return s.generateTokenPair(organizer)
}

// Logout invalidates a refresh token. Missing or already-expired
// tokens are not an error: logout is idempotent from the caller's view.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.cache.Delete(refreshCacheKey(refreshToken))
	}
	return nil
}

// ValidateToken validates an access token and returns the organizer id and role.
func (s *AuthService) ValidateToken(token string) (string, string, error) {
	organizerID, role, err := auth.ValidateJWT(token, s.cfg.JWTSecret)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	return organizerID, role, nil
}

func (s *AuthService) generateTokenPair(organizer *models.Organizer) (*models.TokenPair, error) {
	accessToken, err := auth.GenerateJWT(organizer.ID, string(organizer.Role), s.cfg.JWTSecret, s.cfg.JWTExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.cache.Set(refreshCacheKey(refreshToken), organizer.ID, s.cfg.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("failed to cache refresh token: %w", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.cfg.JWTExpiration),
	}, nil
}

func refreshCacheKey(token string) string {
	return fmt.Sprintf("refresh_token:%s", token)
}
