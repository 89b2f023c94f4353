package presence

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "user:"
	redisKeySuffix = ":conn"
)

// removeIfOwner deletes KEYS[1] only when it still holds ARGV[1].
var removeIfOwner = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore shares presence between gateway instances.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func redisKey(userId string) string {
	return redisKeyPrefix + userId + redisKeySuffix
}

func (s *RedisStore) Set(ctx context.Context, userId, connId string) error {
	return s.rdb.Set(ctx, redisKey(userId), connId, 0).Err()
}

func (s *RedisStore) Get(ctx context.Context, userId string) (string, bool, error) {
	connId, err := s.rdb.Get(ctx, redisKey(userId)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return connId, true, nil
}

func (s *RedisStore) Remove(ctx context.Context, userId, connId string) (bool, error) {
	n, err := removeIfOwner.Run(ctx, s.rdb, []string{redisKey(userId)}, connId).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisStore) OnlineUsers(ctx context.Context) ([]string, error) {
	users := []string{}
	iter := s.rdb.Scan(ctx, 0, redisKeyPrefix+"*"+redisKeySuffix, 100).Iterator()
	for iter.Next(ctx) {
		id := strings.TrimSuffix(strings.TrimPrefix(iter.Val(), redisKeyPrefix), redisKeySuffix)
		users = append(users, id)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(users)
	return users, nil
}
