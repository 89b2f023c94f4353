package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"campusbuddy/infrastructure/presence"
	"campusbuddy/infrastructure/ws"
	"campusbuddy/internal/entity"
	"campusbuddy/internal/usecase"
	"campusbuddy/pkg/apperror"
)

// Metrics counts inbound events. Connection gauges hang off the hub instead.
type Metrics interface {
	EventReceived(event string)
}

type nopMetrics struct{}

func (nopMetrics) EventReceived(string) {}

type GatewayConfig struct {
	Hub       ws.IHub
	Presence  presence.Store
	AuthUc    usecase.AuthUsecase
	MessageUc usecase.MessageUsecase
	Effects   *usecase.Effects
	Metrics   Metrics
	Logger    *zap.Logger
	// AllowedOrigins is checked against the Origin header. "*" allows any.
	AllowedOrigins []string
}

// Gateway upgrades authenticated requests and dispatches their events.
type Gateway struct {
	hub       ws.IHub
	presence  presence.Store
	authUc    usecase.AuthUsecase
	messageUc usecase.MessageUsecase
	effects   *usecase.Effects
	metrics   Metrics
	logger    *zap.Logger
	upgrader  websocket.Upgrader
}

func NewGateway(cfg GatewayConfig) *Gateway {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}

	g := &Gateway{
		hub:       cfg.Hub,
		presence:  cfg.Presence,
		authUc:    cfg.AuthUc,
		messageUc: cfg.MessageUc,
		effects:   cfg.Effects,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return g
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		set[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set["*"] || set[origin]
	}
}

func handshakeToken(r *http.Request) (string, bool) {
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token, true
	}
	if header := r.Header.Get("Authorization"); header != "" {
		return usecase.BearerToken(header)
	}
	return "", false
}

func rejectHandshake(w http.ResponseWriter, err error) {
	appErr := apperror.From(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   appErr.Message,
		"message": appErr.Reason,
	})
}

// ServeHTTP handles GET /ws. The connection is held until the peer disconnects.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token, ok := handshakeToken(r)
	if !ok {
		rejectHandshake(w, apperror.Unauthenticated(apperror.ReasonMalformed, "token required"))
		return
	}

	user, err := g.authUc.Authenticate(r.Context(), token)
	if err != nil {
		rejectHandshake(w, err)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("upgrade failed", zap.String("user_id", user.Id), zap.Error(err))
		return
	}

	// The request context ends with the handler; connection work outlives it.
	ctx := context.WithoutCancel(r.Context())
	client := ws.NewClient(user.Id, g.hub, conn)
	g.connect(ctx, client, user)

	go client.WritePump()
	client.ReadPump(func(data []byte) {
		g.dispatch(ctx, client, user, data)
	})

	g.disconnect(ctx, client, user)
}

func (g *Gateway) connect(ctx context.Context, client *ws.Client, user entity.User) {
	if err := g.presence.Set(ctx, user.Id, client.Id); err != nil {
		g.logger.Warn("presence set failed", zap.String("user_id", user.Id), zap.Error(err))
	}
	g.hub.RegisterClient(client)
	client.SetState(ws.StateActive)

	if g.effects != nil {
		g.effects.SetOnline(ctx, user.Id, true)
	}
	g.broadcast(entity.Event{
		Name: entity.EventUserOnline,
		Data: entity.PresenceChange{UserId: user.Id, Name: user.Name},
	}, client.Id)

	g.logger.Info("client connected",
		zap.String("user_id", user.Id),
		zap.String("conn_id", client.Id),
	)
}

func (g *Gateway) disconnect(ctx context.Context, client *ws.Client, user entity.User) {
	// A store error leaves ownership unknown; the socket is gone either way, so
	// the user is still taken offline.
	removed, err := g.presence.Remove(ctx, user.Id, client.Id)
	if err != nil {
		g.logger.Warn("presence remove failed", zap.String("user_id", user.Id), zap.Error(err))
		removed = true
	}
	g.logger.Info("client disconnected",
		zap.String("user_id", user.Id),
		zap.String("conn_id", client.Id),
		zap.Bool("superseded", !removed),
	)
	if !removed {
		return
	}

	if g.effects != nil {
		g.effects.SetOnline(ctx, user.Id, false)
	}
	g.broadcast(entity.Event{
		Name: entity.EventUserOffline,
		Data: entity.PresenceChange{UserId: user.Id, Name: user.Name},
	}, client.Id)
}

func (g *Gateway) dispatch(ctx context.Context, client *ws.Client, user entity.User, data []byte) {
	var frame inbound
	if err := json.Unmarshal(data, &frame); err != nil || frame.Event == "" {
		g.sendError(client, apperror.Validation("invalid event frame"))
		return
	}
	g.metrics.EventReceived(frame.Event)

	var err error
	switch frame.Event {
	case entity.EventMessageSend:
		var payload SendMessage
		if err = decodeData(frame.Data, &payload); err == nil {
			_, err = g.messageUc.Send(ctx, user, entity.SendMessageRequest{Content: payload.Content})
		}

	case entity.EventMessageEdit:
		var payload EditMessage
		if err = decodeData(frame.Data, &payload); err == nil {
			_, err = g.messageUc.Edit(ctx, user, payload.MessageId, entity.EditMessageRequest{Content: payload.Content})
		}

	case entity.EventMessageDelete:
		var payload DeleteMessage
		if err = decodeData(frame.Data, &payload); err == nil {
			err = g.messageUc.Delete(ctx, user, payload.MessageId)
		}

	case entity.EventMessageReaction:
		var payload ReactMessage
		if err = decodeData(frame.Data, &payload); err == nil {
			_, err = g.messageUc.React(ctx, user, payload.MessageId, entity.ReactionRequest{Emoji: payload.Emoji})
		}

	case entity.EventUserTyping:
		var payload Typing
		if err = decodeData(frame.Data, &payload); err == nil {
			g.broadcast(entity.Event{
				Name: entity.EventUserTyping,
				Data: entity.TypingIndicator{UserId: user.Id, Name: user.Name, IsTyping: payload.IsTyping},
			}, client.Id)
		}

	default:
		err = apperror.Validation("unknown event " + frame.Event)
	}

	if err != nil {
		g.sendError(client, err)
	}
}

func decodeData(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return apperror.Validation("invalid event data")
	}
	return nil
}

func (g *Gateway) broadcast(event entity.Event, exceptConnId string) {
	payload, err := json.Marshal(event)
	if err != nil {
		g.logger.Error("marshal event", zap.String("event", event.Name), zap.Error(err))
		return
	}
	g.hub.Broadcast(payload, exceptConnId)
}

func (g *Gateway) sendError(client *ws.Client, err error) {
	appErr := apperror.From(err)
	message := appErr.Message
	if appErr.Kind == apperror.KindInternal {
		g.logger.Error("event failed", zap.String("user_id", client.UserId), zap.Error(err))
	}

	payload, marshalErr := json.Marshal(entity.Event{
		Name: entity.EventError,
		Data: entity.ErrorPayload{Code: appErr.Code, Message: message, Reason: appErr.Reason},
	})
	if marshalErr != nil {
		return
	}
	g.hub.SendToClient(client.Id, payload)
}
