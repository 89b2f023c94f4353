package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusbuddy/infrastructure/cache"
	"campusbuddy/infrastructure/presence"
	"campusbuddy/infrastructure/ws"
	"campusbuddy/internal/entity"
	"campusbuddy/pkg/apperror"
)

type stubAuth struct{}

func (stubAuth) Authenticate(_ context.Context, token string) (entity.User, error) {
	switch token {
	case "alice", "bob":
		return entity.User{Id: "u-" + token, Name: strings.ToUpper(token[:1]) + token[1:], Role: entity.RoleStudent}, nil
	case "expired":
		return entity.User{}, apperror.Unauthenticated(apperror.ReasonExpired, "token expired")
	}
	return entity.User{}, apperror.Unauthenticated(apperror.ReasonUnknown, "invalid token")
}

// stubMessages broadcasts like the real usecase does after a successful write.
type stubMessages struct {
	publisher *Publisher
}

func (s *stubMessages) Index(context.Context, entity.MessageIndexFilter) entity.Page[entity.Message] {
	return entity.EmptyPage[entity.Message](entity.PageRequest{})
}

func (s *stubMessages) Get(context.Context, string) (entity.Message, error) {
	return entity.Message{}, apperror.NotFound("message not found")
}

func (s *stubMessages) Send(ctx context.Context, actor entity.User, req entity.SendMessageRequest) (entity.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return entity.Message{}, apperror.Validation("content is required")
	}
	message := entity.Message{Id: "m1", Content: req.Content, AuthorId: actor.Id}
	s.publisher.Broadcast(ctx, entity.Event{Name: entity.EventMessageReceive, Data: message})
	return message, nil
}

func (s *stubMessages) Edit(context.Context, entity.User, string, entity.EditMessageRequest) (entity.Message, error) {
	return entity.Message{}, apperror.Forbidden("only the author can edit this message")
}

func (s *stubMessages) Delete(ctx context.Context, _ entity.User, messageId string) error {
	s.publisher.Broadcast(ctx, entity.Event{Name: entity.EventMessageDelete, Data: entity.MessageDeleted{MessageId: messageId}})
	return nil
}

func (s *stubMessages) React(context.Context, entity.User, string, entity.ReactionRequest) (entity.Message, error) {
	return entity.Message{}, apperror.NotFound("message not found")
}

func (s *stubMessages) Summary(context.Context, int) (entity.ChatSummary, error) {
	return entity.ChatSummary{}, nil
}

type countingEvents struct{ names chan string }

func (c countingEvents) EventReceived(event string) { c.names <- event }

type testGateway struct {
	server    *httptest.Server
	hub       *ws.Hub
	presence  presence.Store
	publisher *Publisher
	events    countingEvents
}

func newTestGateway(t *testing.T) *testGateway {
	t.Helper()
	return newTestGatewayWith(t, func(s presence.Store) presence.Store { return s })
}

// flakyRemove fails every Remove while delegating the rest.
type flakyRemove struct {
	presence.Store
}

func (flakyRemove) Remove(context.Context, string, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func newTestGatewayWith(t *testing.T, wrap func(presence.Store) presence.Store) *testGateway {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub(nil)
	go hub.Run(ctx)

	store := wrap(presence.NewMemoryStore(cache.NewMemCache()))
	publisher := NewPublisher(hub, store, nil)
	events := countingEvents{names: make(chan string, 64)}

	gateway := NewGateway(GatewayConfig{
		Hub:            hub,
		Presence:       store,
		AuthUc:         stubAuth{},
		MessageUc:      &stubMessages{publisher: publisher},
		Metrics:        events,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	server := httptest.NewServer(gateway)

	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return &testGateway{server: server, hub: hub, presence: store, publisher: publisher, events: events}
}

func (g *testGateway) url(query string) string {
	return "ws" + strings.TrimPrefix(g.server.URL, "http") + "/ws" + query
}

// dial connects and waits until the hub has registered the new connection.
func (g *testGateway) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	before := g.hub.GetClientCount()
	conn, _, err := websocket.DefaultDialer.Dial(g.url("?token="+token), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return g.hub.GetClientCount() == before+1 }, time.Second, 5*time.Millisecond)
	return conn
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func readEvent(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"event": event, "data": data}))
}

func TestHandshakeRejectsBadTokens(t *testing.T) {
	g := newTestGateway(t)

	for query, status := range map[string]int{
		"":               http.StatusUnauthorized,
		"?token=expired": http.StatusUnauthorized,
		"?token=nobody":  http.StatusUnauthorized,
	} {
		_, resp, err := websocket.DefaultDialer.Dial(g.url(query), nil)
		require.ErrorIs(t, err, websocket.ErrBadHandshake, query)
		require.NotNil(t, resp)
		assert.Equal(t, status, resp.StatusCode, query)
		resp.Body.Close()
	}
	assert.Zero(t, g.hub.GetClientCount())
}

func TestHandshakeAcceptsAuthorizationHeader(t *testing.T) {
	g := newTestGateway(t)

	header := http.Header{"Authorization": []string{"Bearer alice"}}
	conn, _, err := websocket.DefaultDialer.Dial(g.url(""), header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		_, ok, _ := g.presence.Get(context.Background(), "u-alice")
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestHandshakeRejectsForeignOrigin(t *testing.T) {
	g := newTestGateway(t)

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(g.url("?token=alice"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPresenceBroadcasts(t *testing.T) {
	g := newTestGateway(t)
	alice := g.dial(t, "alice")
	bob := g.dial(t, "bob")

	online := readEvent(t, alice)
	assert.Equal(t, entity.EventUserOnline, online.Event)
	assert.JSONEq(t, `{"userId":"u-bob","name":"Bob"}`, string(online.Data))

	require.NoError(t, bob.Close())
	offline := readEvent(t, alice)
	assert.Equal(t, entity.EventUserOffline, offline.Event)
	assert.JSONEq(t, `{"userId":"u-bob","name":"Bob"}`, string(offline.Data))

	_, ok, err := g.presence.Get(context.Background(), "u-bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOfflineBroadcastSurvivesPresenceFailure(t *testing.T) {
	g := newTestGatewayWith(t, func(s presence.Store) presence.Store { return flakyRemove{Store: s} })
	alice := g.dial(t, "alice")
	bob := g.dial(t, "bob")
	readEvent(t, alice) // bob online

	require.NoError(t, bob.Close())
	offline := readEvent(t, alice)
	assert.Equal(t, entity.EventUserOffline, offline.Event)
	assert.JSONEq(t, `{"userId":"u-bob","name":"Bob"}`, string(offline.Data))
}

func TestSupersededConnectionKeepsPresence(t *testing.T) {
	g := newTestGateway(t)
	first := g.dial(t, "alice")
	g.dial(t, "alice")

	require.NoError(t, first.Close())
	require.Eventually(t, func() bool { return g.hub.GetClientCount() == 1 }, time.Second, 5*time.Millisecond)

	_, ok, err := g.presence.Get(context.Background(), "u-alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSendMessageReachesEveryone(t *testing.T) {
	g := newTestGateway(t)
	alice := g.dial(t, "alice")
	bob := g.dial(t, "bob")
	readEvent(t, alice) // bob online

	send(t, alice, entity.EventMessageSend, SendMessage{Content: "lecture moved to 3pm"})

	for _, conn := range []*websocket.Conn{alice, bob} {
		got := readEvent(t, conn)
		assert.Equal(t, entity.EventMessageReceive, got.Event)

		var message entity.Message
		require.NoError(t, json.Unmarshal(got.Data, &message))
		assert.Equal(t, "lecture moved to 3pm", message.Content)
		assert.Equal(t, "u-alice", message.AuthorId)
	}
	assert.Equal(t, entity.EventMessageSend, <-g.events.names)
}

func TestTypingRelayedToOthersOnly(t *testing.T) {
	g := newTestGateway(t)
	alice := g.dial(t, "alice")
	bob := g.dial(t, "bob")
	readEvent(t, alice)

	send(t, alice, entity.EventUserTyping, Typing{IsTyping: true})
	got := readEvent(t, bob)
	assert.Equal(t, entity.EventUserTyping, got.Event)
	assert.JSONEq(t, `{"userId":"u-alice","name":"Alice","isTyping":true}`, string(got.Data))

	// The next frame alice sees is the reply to her delete, not her own typing.
	send(t, alice, entity.EventMessageDelete, DeleteMessage{MessageId: "m9"})
	got = readEvent(t, alice)
	assert.Equal(t, entity.EventMessageDelete, got.Event)
	assert.JSONEq(t, `{"messageId":"m9"}`, string(got.Data))
}

func TestFailuresReturnErrorEvent(t *testing.T) {
	g := newTestGateway(t)
	alice := g.dial(t, "alice")

	cases := []struct {
		name string
		raw  string
		code string
	}{
		{"malformed frame", `not json`, "VALIDATION_ERROR"},
		{"unknown event", `{"event":"room:join"}`, "VALIDATION_ERROR"},
		{"bad data", `{"event":"message:send","data":"text"}`, "VALIDATION_ERROR"},
		{"empty message", `{"event":"message:send","data":{"content":"  "}}`, "VALIDATION_ERROR"},
		{"not the author", `{"event":"message:edit","data":{"messageId":"m1","content":"x"}}`, "FORBIDDEN"},
		{"missing message", `{"event":"message:reaction","data":{"messageId":"nope","emoji":"👍"}}`, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte(tc.raw)))
			got := readEvent(t, alice)
			require.Equal(t, entity.EventError, got.Event)

			var payload entity.ErrorPayload
			require.NoError(t, json.Unmarshal(got.Data, &payload))
			assert.Equal(t, tc.code, payload.Code)
			assert.NotEmpty(t, payload.Message)
		})
	}
}

func TestPublisherNotifyUser(t *testing.T) {
	g := newTestGateway(t)
	alice := g.dial(t, "alice")

	ctx := context.Background()
	g.publisher.NotifyUser(ctx, "u-nobody", entity.Event{Name: entity.EventNotification})
	g.publisher.NotifyUser(ctx, "u-alice", entity.Event{
		Name: entity.EventNotification,
		Data: entity.Notification{Type: "badge", Title: "Badge earned", Message: "First Message"},
	})

	got := readEvent(t, alice)
	assert.Equal(t, entity.EventNotification, got.Event)
	assert.Contains(t, string(got.Data), "First Message")
}
