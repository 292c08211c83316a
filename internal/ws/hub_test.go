package ws

import (
	"encoding/json"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(os.Stdout, "test: ", 0)
}

func newTestClient(organizerID string, schedules ...string) *Client {
	return &Client{
		send:        make(chan []byte, 4),
		organizerID: organizerID,
		schedules:   schedules,
	}
}

func TestHubRegisterClientIndexesByOrganizerAndSchedule(t *testing.T) {
	h := NewHub(testLogger())
	client := newTestClient("org-1", "sched-1")

	h.registerClient(client)

	assert.Same(t, client, h.organizers["org-1"])
	assert.True(t, h.schedules["sched-1"][client])
}

func TestHubRegisterClientReplacesExistingOrganizerConnection(t *testing.T) {
	h := NewHub(testLogger())
	first := newTestClient("org-1", "sched-1")
	second := newTestClient("org-1", "sched-1")

	h.registerClient(first)
	h.registerClient(second)

	assert.Same(t, second, h.organizers["org-1"])
	_, firstStillSubscribed := h.schedules["sched-1"][first]
	assert.False(t, firstStillSubscribed, "replaced client must be removed from schedule subscriptions")

	_, firstOpen := <-first.send
	assert.False(t, firstOpen, "replaced client's send channel must be closed")
}

func TestHubBroadcastMessageDeliversToScheduleSubscribers(t *testing.T) {
	h := NewHub(testLogger())
	subscribed := newTestClient("org-1", "sched-1")
	unrelated := newTestClient("org-2", "sched-2")

	h.registerClient(subscribed)
	h.registerClient(unrelated)

	h.broadcastMessage(&Message{Type: "schedule.generated", ScheduleID: "sched-1", Data: map[string]string{"ok": "yes"}})

	select {
	case payload := <-subscribed.send:
		var msg Message
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.Equal(t, "schedule.generated", msg.Type)
	default:
		t.Fatal("expected subscribed client to receive the broadcast")
	}

	select {
	case <-unrelated.send:
		t.Fatal("unrelated client must not receive a schedule broadcast for a schedule it isn't subscribed to")
	default:
	}
}

func TestHubSubscribeAndUnsubscribeFromSchedule(t *testing.T) {
	h := NewHub(testLogger())
	client := newTestClient("org-1")

	h.SubscribeToSchedule(client, "sched-1")
	assert.True(t, h.schedules["sched-1"][client])

	h.UnsubscribeFromSchedule(client, "sched-1")
	_, exists := h.schedules["sched-1"]
	assert.False(t, exists, "schedule entry must be pruned once its last subscriber leaves")
}

func TestHubUnregisterClientClosesSendChannel(t *testing.T) {
	h := NewHub(testLogger())
	client := newTestClient("org-1", "sched-1")
	h.registerClient(client)

	h.unregisterClient(client)

	_, open := <-client.send
	assert.False(t, open)
	_, stillTracked := h.organizers["org-1"]
	assert.False(t, stillTracked)
}
