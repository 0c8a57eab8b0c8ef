package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/auth"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/server"
	mdw "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/middleware"
)

type Limits struct {
	RPS            float64
	Burst          int
	PerIPRPS       float64
	PerIPBurst     int
	MaxInflight    int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

func (l *Limits) defaults() {
	if l.RPS <= 0 {
		l.RPS, l.Burst = 200, 400
	}
	if l.PerIPRPS <= 0 {
		l.PerIPRPS, l.PerIPBurst = 20, 40
	}
	if l.MaxInflight <= 0 {
		l.MaxInflight = 300
	}
	if l.MaxBodyBytes <= 0 {
		l.MaxBodyBytes = 1 << 20
	}
	if l.RequestTimeout <= 0 {
		l.RequestTimeout = 20 * time.Second
	}
}

type Deps struct {
	Log        *zap.Logger
	JWT        *auth.JWTer
	Permission string // 访问 /admin/v1 所需权限
	Origins    []string
	Limits     Limits
	Modules    *Registry
}

func NewAdminEngine(d Deps) *gin.Engine {
	d.Limits.defaults()
	r := server.NewRouter(d.Log, d.Origins)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(d.Limits.RPS), d.Limits.Burst),
		mdw.RateLimitPerIP(rate.Limit(d.Limits.PerIPRPS), d.Limits.PerIPBurst),
		mdw.ConcurrencyLimit(d.Limits.MaxInflight),
		mdw.MaxBodyBytes(d.Limits.MaxBodyBytes),
		mdw.Timeout(d.Limits.RequestTimeout),
		mdw.SimpleRecovery(d.Log),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.JWT, d.Permission))
	if d.Modules != nil {
		d.Modules.MountAll(admin)
	}
	return r
}
