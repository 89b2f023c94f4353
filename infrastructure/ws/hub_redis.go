package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const relayChannel = "campusbuddy:relay"

// RedisHub extends the local Hub across instances: broadcasts and sends to
// connections held elsewhere are published on a shared channel and replayed
// locally by every other instance.
type RedisHub struct {
	*Hub

	rdb      *redis.Client
	pubsub   *redis.PubSub
	serverID string
}

type relayMessage struct {
	FromServerID string `json:"fromServerId"`
	ConnId       string `json:"connId,omitempty"`
	Except       string `json:"except,omitempty"`
	Payload      []byte `json:"payload"`
}

// NewRedisHub subscribes before returning so nothing published afterwards is missed.
func NewRedisHub(ctx context.Context, rdb *redis.Client, serverID string, logger *zap.Logger) (*RedisHub, error) {
	pubsub := rdb.Subscribe(ctx, relayChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("ws: subscribe relay: %w", err)
	}

	return &RedisHub{
		Hub:      NewHub(logger),
		rdb:      rdb,
		pubsub:   pubsub,
		serverID: serverID,
	}, nil
}

func (h *RedisHub) Run(ctx context.Context) {
	go h.subscribe(ctx)
	h.Hub.Run(ctx)
	_ = h.pubsub.Close()
}

func (h *RedisHub) subscribe(ctx context.Context) {
	ch := h.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var relay relayMessage
			if err := json.Unmarshal([]byte(msg.Payload), &relay); err != nil {
				h.logger.Warn("invalid relay message", zap.Error(err))
				continue
			}
			if relay.FromServerID == h.serverID {
				continue
			}

			if relay.ConnId == "" {
				h.Hub.Broadcast(relay.Payload, relay.Except)
			} else if h.Hub.HasClient(relay.ConnId) {
				h.Hub.SendToClient(relay.ConnId, relay.Payload)
			}
		}
	}
}

func (h *RedisHub) publish(relay relayMessage) {
	relay.FromServerID = h.serverID
	payload, err := json.Marshal(relay)
	if err != nil {
		h.logger.Error("marshal relay message", zap.Error(err))
		return
	}
	if err := h.rdb.Publish(context.Background(), relayChannel, payload).Err(); err != nil {
		h.logger.Warn("publish relay message", zap.Error(err))
	}
}

func (h *RedisHub) SendToClient(connId string, message []byte) {
	if h.Hub.HasClient(connId) {
		h.Hub.SendToClient(connId, message)
		return
	}
	h.publish(relayMessage{ConnId: connId, Payload: message})
}

func (h *RedisHub) Broadcast(message []byte, exceptConnId string) {
	h.Hub.Broadcast(message, exceptConnId)
	h.publish(relayMessage{Except: exceptConnId, Payload: message})
}
