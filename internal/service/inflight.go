package service

import (
	"slices"
	"strings"
	"sync"
)

// inflight 正在进行的成员变更，按 (role, user) 行加锁；同一行并发变更直接拒绝，其他行不受影响
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflight() *inflight { return &inflight{keys: make(map[string]struct{})} }

func rowKey(roleID, userID string) string { return roleID + "\x00" + userID }

func (f *inflight) tryAcquire(roleID, userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := rowKey(roleID, userID)
	if _, busy := f.keys[k]; busy {
		return false
	}
	f.keys[k] = struct{}{}
	return true
}

func (f *inflight) release(roleID, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, rowKey(roleID, userID))
}

// pending 该角色下正在变更的用户 id
func (f *inflight) pending(roleID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := roleID + "\x00"
	out := make([]string, 0)
	for k := range f.keys {
		if uid, ok := strings.CutPrefix(k, prefix); ok {
			out = append(out, uid)
		}
	}
	slices.Sort(out)
	return out
}
