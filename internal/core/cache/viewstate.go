package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/membership"
)

// StateStore 成员页过滤状态存 redis，按 TTL 过期
type StateStore struct {
	c   *Cache
	ttl time.Duration
}

func NewStateStore(c *Cache, ttl time.Duration) *StateStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &StateStore{c: c, ttl: ttl}
}

func (s *StateStore) Load(ctx context.Context, key string) (membership.FilterState, bool, error) {
	var st membership.FilterState
	b, err := s.c.RDB.Get(ctx, s.c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return st, false, nil
	}
	if err != nil {
		return st, false, err
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return st, false, err
	}
	return st, true, nil
}

func (s *StateStore) Save(ctx context.Context, key string, st membership.FilterState) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.c.RDB.Set(ctx, s.c.prefix+key, b, s.ttl).Err()
}

var _ membership.StateStore = (*StateStore)(nil)
