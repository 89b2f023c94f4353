package ws

import "context"

type IHub interface {
	Run(ctx context.Context)
	RegisterClient(client *Client)
	UnregisterClient(client *Client)
	// SendToClient delivers to one connection; unknown connections are dropped silently.
	SendToClient(connId string, message []byte)
	// Broadcast delivers to every connection except exceptConnId (may be empty).
	Broadcast(message []byte, exceptConnId string)
	GetClientCount() int
}
