package ws

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024

	sendBufferSize = 256
)

// State is the lifecycle position of one realtime connection.
type State int32

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateActive
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateActive:
		return "active"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unauthenticated"
	}
}

// Client is one upgraded connection owned by a user.
type Client struct {
	Id     string
	UserId string

	hub   IHub
	conn  *websocket.Conn
	send  chan []byte
	state atomic.Int32
}

func NewClient(userId string, hub IHub, conn *websocket.Conn) *Client {
	c := &Client{
		Id:     uuid.New().String(),
		UserId: userId,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
	c.state.Store(int32(StateAuthenticated))
	return c
}

func (c *Client) State() State {
	return State(c.state.Load())
}

func (c *Client) SetState(s State) {
	c.state.Store(int32(s))
}

// ReadPump hands every inbound frame to handle until the peer goes away.
// On return the client is unregistered from the hub and the socket closed.
func (c *Client) ReadPump(handle func(data []byte)) {
	defer func() {
		c.SetState(StateDisconnected)
		c.hub.UnregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		handle(data)
	}
}

// WritePump drains the send channel to the socket and keeps it alive with pings.
// Each payload is written as its own text frame.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
