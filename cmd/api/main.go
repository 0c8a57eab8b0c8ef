package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/auth"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/cache"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/config"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/database"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/i18n"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/logger"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/server"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/hrapi"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/membership"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/repo"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/service"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/handler"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}
	log, cleanup := logger.FromConfig(cfg.Log, cfg.App)
	defer cleanup()
	restoreStdLog := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer restoreStdLog()
	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)

	// Redis 可选：统计/参考数据缓存 + 视图状态；不可用时退回进程内存
	var (
		c      *cache.Cache
		states membership.StateStore = membership.NewMemoryStore(10_000, cfg.Cache.ViewStateTTL())
	)
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := c.Ping(pctx); err != nil {
			log.Warn("redis unavailable, using in-memory view state", zap.Error(err))
			_ = c.Close()
			c = nil
		} else {
			defer c.Close()
			states = cache.NewStateStore(c, cfg.Cache.ViewStateTTL())
			log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
		cancel()
	}

	// 审计库可选
	var audit domain.AuditRepository
	if cfg.DB.Driver != "" {
		audit = mustOpenAudit(cfg, log)
	}

	tr, err := i18n.New(cfg.I18n.Default)
	if err != nil {
		log.Fatal("load locales", zap.Error(err))
	}

	hr := hrapi.New(hrapi.Options{
		BaseURL: cfg.Backend.BaseURL,
		Token:   cfg.Backend.Token,
		Timeout: cfg.Backend.Timeout(),
		Retries: cfg.Backend.Retries,
		RPS:     cfg.Backend.RPS,
		Burst:   cfg.Backend.Burst,
	}, nil, log)

	members := service.NewMembershipService(hr, audit, states, service.MembershipOptions{
		PageSize:      cfg.Membership.PageSize,
		FetchPageSize: cfg.Backend.FetchPageSize,
	}, log)
	roles := service.NewRoleService(hr, c, service.RoleOptions{
		StatsTTL:      cfg.Cache.StatsTTL(),
		RefTTL:        cfg.Cache.RefTTL(),
		FetchPageSize: cfg.Backend.FetchPageSize,
	}, log)

	mods := &router.Registry{}
	mods.Register(handler.NewRoleHandler(roles), handler.NewMembershipHandler(members, tr))

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	h := cfg.App.HTTP
	r := router.NewAdminEngine(router.Deps{
		Log:        log,
		JWT:        jwter,
		Permission: cfg.JWT.Permission,
		Origins:    h.CORSOrigins,
		Limits: router.Limits{
			RPS:            h.RPS,
			Burst:          h.Burst,
			PerIPRPS:       h.PerIPRPS,
			PerIPBurst:     h.PerIPBurst,
			MaxInflight:    h.MaxInflight,
			MaxBodyBytes:   h.MaxBodyBytes,
			RequestTimeout: h.RequestTimeout(),
		},
		Modules: mods,
	})

	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("role admin start FAILED", zap.Error(err))
		}
	}()
	log.Info("role admin started",
		zap.String("env", cfg.App.Env),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.Bool("redis", c != nil),
		zap.Bool("audit", audit != nil),
	)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("role admin stopped gracefully")
}

func dbOpts(cfg *config.Config, l *zap.Logger) database.Opts {
	return database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l,
	}
}

func mustOpenAudit(cfg *config.Config, l *zap.Logger) *repo.AuditRepo {
	db, err := database.NewGorm(dbOpts(cfg, l))
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	r := repo.NewAuditRepo(db)
	if cfg.DB.AutoMigrate {
		if err := r.Migrate(); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}
	l.Info("audit database connected", zap.String("driver", cfg.DB.Driver))
	return r
}
