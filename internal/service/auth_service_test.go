package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"badminton-scheduler/internal/config"
	"badminton-scheduler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrganizerRepository is an in-memory stand-in for *store.OrganizerRepository.
type fakeOrganizerRepository struct {
	mu      sync.Mutex
	byID    map[string]*models.Organizer
	byEmail map[string]*models.Organizer
}

func newFakeOrganizerRepository() *fakeOrganizerRepository {
	return &fakeOrganizerRepository{
		byID:    make(map[string]*models.Organizer),
		byEmail: make(map[string]*models.Organizer),
	}
}

func (f *fakeOrganizerRepository) Create(ctx context.Context, o *models.Organizer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *o
	f.byID[o.ID] = &cp
	f.byEmail[o.Email] = &cp
	return nil
}

func (f *fakeOrganizerRepository) GetByEmail(ctx context.Context, email string) (*models.Organizer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byEmail[email]
	if !ok {
		return nil, errNotFoundFake
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrganizerRepository) GetByID(ctx context.Context, id string) (*models.Organizer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return nil, errNotFoundFake
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrganizerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byEmail[email]
	return ok, nil
}

var errNotFoundFake = fakeErr("organizer not found")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

// fakeTokenCache is an in-memory stand-in for *CacheService.
type fakeTokenCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{data: make(map[string][]byte)}
}

func (f *fakeTokenCache) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = data
	return nil
}

func (f *fakeTokenCache) Get(key string, dest interface{}) error {
	f.mu.Lock()
	data, ok := f.data[key]
	f.mu.Unlock()
	if !ok {
		return errNotFoundFake
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeTokenCache) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:          "test-secret",
		JWTExpiration:      time.Minute,
		RefreshTokenExpiry: time.Hour,
		BCryptCost:         4,
	}
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	repo := newFakeOrganizerRepository()
	cache := newFakeTokenCache()
	svc := NewAuthService(repo, testAuthConfig(), cache, &sequentialIDs{}, testLogger())

	organizer, tokens, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "organizer@example.com",
		Password: "hunter2hunter2",
		Name:     "Pat",
	})
	require.NoError(t, err)
	assert.Empty(t, organizer.PasswordHash, "password hash must never leave the service")
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	loggedIn, loginTokens, err := svc.Login(context.Background(), "organizer@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, organizer.ID, loggedIn.ID)
	assert.NotEmpty(t, loginTokens.AccessToken)
}

func TestAuthServiceRegisterDuplicateEmailFails(t *testing.T) {
	repo := newFakeOrganizerRepository()
	cache := newFakeTokenCache()
	svc := NewAuthService(repo, testAuthConfig(), cache, &sequentialIDs{}, testLogger())

	req := models.RegisterRequest{Email: "dup@example.com", Password: "password123", Name: "Pat"}
	_, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthServiceLoginWrongPasswordFails(t *testing.T) {
	repo := newFakeOrganizerRepository()
	cache := newFakeTokenCache()
	svc := NewAuthService(repo, testAuthConfig(), cache, &sequentialIDs{}, testLogger())

	_, _, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "wrongpass@example.com", Password: "correctpassword", Name: "Pat",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "wrongpass@example.com", "incorrectpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceRefreshTokenAndLogout(t *testing.T) {
	repo := newFakeOrganizerRepository()
	cache := newFakeTokenCache()
	svc := NewAuthService(repo, testAuthConfig(), cache, &sequentialIDs{}, testLogger())

	_, tokens, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "refresh@example.com", Password: "password123", Name: "Pat",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The old refresh token was consumed by RefreshToken.
	_, err = svc.RefreshToken(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, svc.Logout(context.Background(), refreshed.RefreshToken))
	_, err = svc.RefreshToken(context.Background(), refreshed.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthServiceValidateTokenRoundTrip(t *testing.T) {
	repo := newFakeOrganizerRepository()
	cache := newFakeTokenCache()
	svc := NewAuthService(repo, testAuthConfig(), cache, &sequentialIDs{}, testLogger())

	organizer, tokens, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "validate@example.com", Password: "password123", Name: "Pat",
	})
	require.NoError(t, err)

	organizerID, role, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, organizer.ID, organizerID)
	assert.Equal(t, string(models.RoleOrganizer), role)

	_, _, err = svc.ValidateToken("not-a-real-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
