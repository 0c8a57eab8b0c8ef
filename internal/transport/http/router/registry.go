package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// AdminModule 挂到 /admin/v1 下的一组接口
type AdminModule interface{ MountAdmin(*gin.RouterGroup) }

// 可选：控制挂载顺序（数值越小越先挂），不实现默认 100
type prioritizer interface{ Priority() int }

type Registry struct {
	mu   sync.RWMutex
	mods []AdminModule
}

func (r *Registry) Register(mods ...AdminModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mods = append(r.mods, mods...)
}

// MountAll 按优先级挂载，同优先级保持注册顺序
func (r *Registry) MountAll(g *gin.RouterGroup) {
	r.mu.RLock()
	mods := append([]AdminModule(nil), r.mods...)
	r.mu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAdmin(g)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
