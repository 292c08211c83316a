package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"badminton-scheduler/internal/models"
	"badminton-scheduler/internal/scheduler"
	"badminton-scheduler/internal/service"
	"badminton-scheduler/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeScheduleStore satisfies the unexported service.scheduleStore seam
// structurally, without importing it.
type fakeScheduleStore struct {
	mu   sync.Mutex
	data map[string]*models.StoredSchedule
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{data: make(map[string]*models.StoredSchedule)}
}

func (f *fakeScheduleStore) Save(ctx context.Context, sched *models.StoredSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[sched.ScheduleID] = sched
	return nil
}

func (f *fakeScheduleStore) Get(ctx context.Context, id string) (*models.StoredSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sched, ok := f.data[id]
	if !ok {
		return nil, store.ErrScheduleNotFound
	}
	return sched, nil
}

func (f *fakeScheduleStore) ToggleRound(ctx context.Context, scheduleID, roundID string) (*models.StoredSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sched, ok := f.data[scheduleID]
	if !ok {
		return nil, store.ErrScheduleNotFound
	}
	for i := range sched.Rounds {
		if sched.Rounds[i].ID == roundID {
			sched.Rounds[i].Completed = !sched.Rounds[i].Completed
			return sched, nil
		}
	}
	return nil, store.ErrRoundNotFound
}

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id%d", s.n)
}

func testLogger() *log.Logger {
	return log.New(os.Stdout, "test: ", 0)
}

// newTestContext builds a gin.Context wired to a recorder, with the
// given organizer pre-authenticated the way RequireAuth would have set it.
func newTestContext(method, target string, body []byte, organizerID string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if organizerID != "" {
		c.Set("organizer_id", organizerID)
	}
	return c, w
}

func TestHandleCreateScheduleSuccess(t *testing.T) {
	svc := service.NewScheduleService(newFakeScheduleStore(), &sequentialIDs{}, nil, nil, testLogger())
	handler := HandleCreateSchedule(svc)

	body, _ := json.Marshal(models.CreateScheduleRequest{
		Players:   []string{"A", "B", "C", "D", "E"},
		Courts:    1,
		MatchType: "singles",
	})
	c, w := newTestContext(http.MethodPost, "/api/v1/schedules", body, "org-1", nil)

	handler(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["scheduleId"])
	assert.NotEmpty(t, resp["rounds"])
}

func TestHandleCreateScheduleZeroCourtsReturnsDocumentedMessage(t *testing.T) {
	svc := service.NewScheduleService(newFakeScheduleStore(), &sequentialIDs{}, nil, nil, testLogger())
	handler := HandleCreateSchedule(svc)

	body, _ := json.Marshal(models.CreateScheduleRequest{
		Players:   []string{"A", "B", "C", "D", "E"},
		Courts:    0,
		MatchType: "singles",
	})
	c, w := newTestContext(http.MethodPost, "/api/v1/schedules", body, "org-1", nil)

	handler(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "At least 1 court required")
}

func TestHandleCreateScheduleTooFewPlayersReturnsDocumentedMessage(t *testing.T) {
	svc := service.NewScheduleService(newFakeScheduleStore(), &sequentialIDs{}, nil, nil, testLogger())
	handler := HandleCreateSchedule(svc)

	body, _ := json.Marshal(models.CreateScheduleRequest{
		Players:   []string{"A", "A", "B", "B", "C", "C"},
		Courts:    1,
		MatchType: "singles",
	})
	c, w := newTestContext(http.MethodPost, "/api/v1/schedules", body, "org-1", nil)

	handler(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unique players remain")
}

func TestHandleGetScheduleOwnershipAndNotFound(t *testing.T) {
	fakeStore := newFakeScheduleStore()
	svc := service.NewScheduleService(fakeStore, &sequentialIDs{}, nil, nil, testLogger())

	created, err := svc.Generate(context.Background(), "org-1", models.CreateScheduleRequest{
		Players:   []string{"A", "B", "C", "D", "E"},
		Courts:    1,
		MatchType: "singles",
	})
	require.NoError(t, err)

	handler := HandleGetSchedule(svc)

	c, w := newTestContext(http.MethodGet, "/api/v1/schedules/"+created.ScheduleID, nil, "org-1",
		gin.Params{{Key: "id", Value: created.ScheduleID}})
	handler(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(http.MethodGet, "/api/v1/schedules/"+created.ScheduleID, nil, "org-2",
		gin.Params{{Key: "id", Value: created.ScheduleID}})
	handler(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = newTestContext(http.MethodGet, "/api/v1/schedules/missing", nil, "org-1",
		gin.Params{{Key: "id", Value: "missing"}})
	handler(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleToggleRoundFlipsCompleted(t *testing.T) {
	fakeStore := newFakeScheduleStore()
	svc := service.NewScheduleService(fakeStore, &sequentialIDs{}, nil, nil, testLogger())

	created, err := svc.Generate(context.Background(), "org-1", models.CreateScheduleRequest{
		Players:   []string{"A", "B", "C", "D", "E"},
		Courts:    1,
		MatchType: "singles",
	})
	require.NoError(t, err)
	roundID := created.Rounds[0].ID

	handler := HandleToggleRound(svc)
	c, w := newTestContext(http.MethodPost, "/api/v1/schedules/"+created.ScheduleID+"/rounds/"+roundID+"/toggle", nil, "org-1",
		gin.Params{{Key: "id", Value: created.ScheduleID}, {Key: "roundId", Value: roundID}})
	handler(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Rounds []scheduler.Round `json:"rounds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rounds, 1)
	assert.True(t, resp.Rounds[0].Completed)
}
