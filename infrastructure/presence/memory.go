package presence

import (
	"context"
	"sort"
	"strings"

	"campusbuddy/infrastructure/cache"
)

const memoryPrefix = "presence:"

// MemoryStore keeps presence in process memory and is cleared on restart.
type MemoryStore struct {
	cache *cache.MemCache
}

func NewMemoryStore(c *cache.MemCache) *MemoryStore {
	if c == nil {
		c = cache.NewMemCache()
	}
	return &MemoryStore{cache: c}
}

func (s *MemoryStore) Set(_ context.Context, userId, connId string) error {
	s.cache.Set(memoryPrefix+userId, connId)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userId string) (string, bool, error) {
	v, ok := s.cache.Get(memoryPrefix + userId)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *MemoryStore) Remove(_ context.Context, userId, connId string) (bool, error) {
	return s.cache.CompareAndDelete(memoryPrefix+userId, connId), nil
}

func (s *MemoryStore) OnlineUsers(_ context.Context) ([]string, error) {
	users := []string{}
	for _, key := range s.cache.Keys() {
		if id, ok := strings.CutPrefix(key, memoryPrefix); ok {
			users = append(users, id)
		}
	}
	sort.Strings(users)
	return users, nil
}
