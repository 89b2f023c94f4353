// Package presence maps each online user to the realtime connection that
// currently represents them. Only one connection per user is tracked; the most
// recent Set wins.
package presence

import "context"

type Store interface {
	Set(ctx context.Context, userId, connId string) error
	Get(ctx context.Context, userId string) (string, bool, error)
	// Remove deletes the mapping only if it still points at connId and reports
	// whether it did. A user who reconnected keeps the newer mapping.
	Remove(ctx context.Context, userId, connId string) (bool, error)
	OnlineUsers(ctx context.Context) ([]string, error)
}
