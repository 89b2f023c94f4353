package websocket

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"campusbuddy/infrastructure/presence"
	"campusbuddy/infrastructure/ws"
	"campusbuddy/internal/entity"
)

// Publisher pushes server-initiated events through the hub. It satisfies
// usecase.EventPublisher.
type Publisher struct {
	hub      ws.IHub
	presence presence.Store
	logger   *zap.Logger
}

func NewPublisher(hub ws.IHub, presenceStore presence.Store, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		hub:      hub,
		presence: presenceStore,
		logger:   logger,
	}
}

func (p *Publisher) Broadcast(_ context.Context, event entity.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal event", zap.String("event", event.Name), zap.Error(err))
		return
	}
	p.hub.Broadcast(payload, "")
}

// NotifyUser delivers to the user's current connection. Users without one are skipped.
func (p *Publisher) NotifyUser(ctx context.Context, userId string, event entity.Event) {
	connId, ok, err := p.presence.Get(ctx, userId)
	if err != nil {
		p.logger.Warn("presence lookup failed", zap.String("user_id", userId), zap.Error(err))
		return
	}
	if !ok {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal event", zap.String("event", event.Name), zap.Error(err))
		return
	}
	p.hub.SendToClient(connId, payload)
}
