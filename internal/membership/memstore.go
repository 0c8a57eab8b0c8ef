package membership

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore 进程内状态存储，未配置 redis 时使用；按 LRU 淘汰并带 TTL，重启即丢失
type MemoryStore struct {
	lru *expirable.LRU[string, FilterState]
}

// NewMemoryStore capacity<=0 取 1024；ttl<=0 不过期
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = 1024
	}
	return &MemoryStore{lru: expirable.NewLRU[string, FilterState](capacity, nil, ttl)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (FilterState, bool, error) {
	st, ok := s.lru.Get(key)
	return st, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, st FilterState) error {
	s.lru.Add(key, st)
	return nil
}
