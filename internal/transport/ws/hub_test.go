package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"kudoswall/internal/logger"
	"kudoswall/internal/metrics"
	"kudoswall/internal/model"
	"kudoswall/internal/repository"
	"kudoswall/internal/service"
)

func init() {
	logger.IsTest = true
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestHubBroadcastsToFormSubscribers(t *testing.T) {
	m := metrics.NewNop()
	hub := NewHub(m)
	defer hub.Stop()

	a := &Connection{FormID: "f1", Send: make(chan []byte, 4)}
	b := &Connection{FormID: "f1", Send: make(chan []byte, 4)}
	other := &Connection{FormID: "f2", Send: make(chan []byte, 4)}
	for _, c := range []*Connection{a, b, other} {
		require.True(t, hub.Register(c))
	}
	waitFor(t, func() bool { return hub.Subscribers("f1") == 2 })
	assert.Equal(t, 3.0, testutil.ToFloat64(m.WSConnections))

	hub.BroadcastToForm("f1", service.EventResponseCreated, map[string]string{"responseId": "r1"})

	for _, c := range []*Connection{a, b} {
		select {
		case data := <-c.Send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			assert.Equal(t, MessageType(service.EventResponseCreated), msg.Type)
			assert.JSONEq(t, `{"responseId":"r1"}`, string(msg.Payload))
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive broadcast")
		}
	}
	assert.Empty(t, other.Send)

	hub.Unregister(a)
	waitFor(t, func() bool { return hub.Subscribers("f1") == 1 })
	_, open := <-a.Send
	assert.False(t, open)
}

func TestHubStopClosesConnections(t *testing.T) {
	m := metrics.NewNop()
	hub := NewHub(m)
	conn := &Connection{FormID: "f1", Send: make(chan []byte, 1)}
	require.True(t, hub.Register(conn))

	hub.Stop()
	hub.Stop()

	_, open := <-conn.Send
	assert.False(t, open)
	assert.False(t, hub.Register(&Connection{FormID: "f1", Send: make(chan []byte, 1)}))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.WSConnections))
	hub.BroadcastToForm("f1", "ignored", nil)
}

func TestFormFeedHandler(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	form := &model.Form{OwnerID: "owner-1", Title: "Launch", Questions: []string{"Q1"}}
	_, err := store.Forms().Create(ctx, form)
	require.NoError(t, err)

	authSvc := service.NewAuthService("0123456789abcdef0123")
	formSvc := service.NewFormService(store.Forms(), service.NewValidator())
	hub := NewHub(metrics.NewNop())
	defer hub.Stop()

	r := mux.NewRouter()
	r.HandleFunc("/v1/ws/forms/{formId}", NewHandler(hub, authSvc, formSvc).FormFeed)
	srv := httptest.NewServer(r)
	defer srv.Close()

	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws/forms/" + form.ID

	_, resp, err := websocket.DefaultDialer.Dial(base, nil)
	require.Error(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	intruder, err := authSvc.IssueOwnerToken("owner-2", "", time.Hour)
	require.NoError(t, err)
	_, resp, err = websocket.DefaultDialer.Dial(base+"?token="+intruder.Token, nil)
	require.Error(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	owner, err := authSvc.IssueOwnerToken("owner-1", "", time.Hour)
	require.NoError(t, err)
	conn, _, err := websocket.DefaultDialer.Dial(base+"?token="+owner.Token, nil)
	require.NoError(t, err)
	defer conn.Close()

	waitFor(t, func() bool { return hub.Subscribers(form.ID) == 1 })
	hub.BroadcastToForm(form.ID, service.EventResponseCreated, model.ResponseCreatedEvent{ResponseID: "r1", FormID: form.ID})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageType(service.EventResponseCreated), msg.Type)

	var event model.ResponseCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, "r1", event.ResponseID)

	conn.Close()
	waitFor(t, func() bool { return hub.Subscribers(form.ID) == 0 })
}
