package ws

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type outbound struct {
	connId  string
	except  string
	payload []byte
}

// Hub owns the set of local connections. Registration, removal and delivery
// all pass through Run so they are applied in the order they were requested.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	outbound   chan outbound
	done       chan struct{}
	mu         sync.RWMutex
	logger     *zap.Logger

	onConnect    func()
	onDisconnect func()
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan outbound, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// OnConnectionChange installs callbacks fired as clients join and leave.
func (h *Hub) OnConnectionChange(onConnect, onDisconnect func()) {
	h.onConnect = onConnect
	h.onDisconnect = onDisconnect
}

func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Id] = client
			h.mu.Unlock()
			if h.onConnect != nil {
				h.onConnect()
			}
			h.logger.Debug("client connected", zap.String("conn_id", client.Id), zap.String("user_id", client.UserId))

		case client := <-h.unregister:
			h.remove(client.Id)

		case msg := <-h.outbound:
			if msg.connId != "" {
				h.deliver(msg.connId, msg.payload)
				continue
			}
			h.mu.RLock()
			targets := make([]string, 0, len(h.clients))
			for connId := range h.clients {
				if connId != msg.except {
					targets = append(targets, connId)
				}
			}
			h.mu.RUnlock()
			for _, connId := range targets {
				h.deliver(connId, msg.payload)
			}
		}
	}
}

// deliver drops a client whose send buffer is full rather than block the hub.
func (h *Hub) deliver(connId string, payload []byte) {
	h.mu.RLock()
	client, ok := h.clients[connId]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.send <- payload:
	default:
		h.logger.Warn("client send buffer full, dropping connection", zap.String("conn_id", connId))
		h.remove(connId)
	}
}

func (h *Hub) remove(connId string) {
	h.mu.Lock()
	client, ok := h.clients[connId]
	if ok {
		delete(h.clients, connId)
		close(client.send)
	}
	h.mu.Unlock()

	if ok {
		if h.onDisconnect != nil {
			h.onDisconnect()
		}
		h.logger.Debug("client disconnected", zap.String("conn_id", connId), zap.String("user_id", client.UserId))
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	for connId, client := range h.clients {
		close(client.send)
		delete(h.clients, connId)
	}
	h.mu.Unlock()
	close(h.done)
}

func (h *Hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) SendToClient(connId string, message []byte) {
	select {
	case h.outbound <- outbound{connId: connId, payload: message}:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(message []byte, exceptConnId string) {
	select {
	case h.outbound <- outbound{except: exceptConnId, payload: message}:
	case <-h.done:
	}
}

func (h *Hub) HasClient(connId string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[connId]
	return ok
}

func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
