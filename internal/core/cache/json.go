package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Fetch 读穿缓存的类型化版本。缓存里的值解不开（结构升级后的旧数据）时
// 删掉重新回源，而不是把错误抛给页面。
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	encode := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}

	var v T
	raw, err := c.GetOrLoad(ctx, key, ttl, encode)
	if err != nil {
		return v, err
	}
	if json.Unmarshal(raw, &v) == nil {
		return v, nil
	}

	_ = c.Delete(ctx, key)
	return load(ctx)
}
