package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int
	CORSOrigins       []string `mapstructure:"corsOrigins"`
	// 入口限流
	RPS          float64 `mapstructure:"rps"`
	Burst        int
	PerIPRPS     float64 `mapstructure:"perIPRPS"`
	PerIPBurst   int     `mapstructure:"perIPBurst"`
	MaxInflight  int64
	MaxBodyBytes int64
}

func (h HTTP) RequestTimeout() time.Duration { return time.Duration(h.RequestTimeoutSec) * time.Second }

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
	// 访问管理端所需权限；持有 admin 角色也可
	Permission string
}

// Backend HR 后端
type Backend struct {
	BaseURL       string `mapstructure:"baseURL"`
	Token         string
	TimeoutSec    int
	Retries       int
	RPS           float64 `mapstructure:"rps"`
	Burst         int
	FetchPageSize int // 一次拉全量用户/成员时的 pageSize
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DB 审计库；Driver 为空则不记审计
type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Cache struct {
	StatsTTLSec     int
	RefTTLSec       int
	ViewStateTTLSec int
}

type I18n struct {
	Default string
}

type Membership struct {
	PageSize int
}

type Config struct {
	App        App
	Log        Log
	JWT        JWT
	Backend    Backend
	DB         DB
	Redis      Redis `mapstructure:"redis"`
	Cache      Cache
	I18n       I18n `mapstructure:"i18n"`
	Membership Membership
}

func (c Cache) StatsTTL() time.Duration     { return time.Duration(c.StatsTTLSec) * time.Second }
func (c Cache) RefTTL() time.Duration       { return time.Duration(c.RefTTLSec) * time.Second }
func (c Cache) ViewStateTTL() time.Duration { return time.Duration(c.ViewStateTTLSec) * time.Second }

func (b Backend) Timeout() time.Duration { return time.Duration(b.TimeoutSec) * time.Second }

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "role-admin")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8081)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 30)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 20)
	v.SetDefault("app.http.rps", 200)
	v.SetDefault("app.http.burst", 400)
	v.SetDefault("app.http.perIPRPS", 20)
	v.SetDefault("app.http.perIPBurst", 40)
	v.SetDefault("app.http.maxInflight", 300)
	v.SetDefault("app.http.maxBodyBytes", 1<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "rwafi")
	v.SetDefault("jwt.accessTokenTTLMin", 60)
	v.SetDefault("jwt.permission", "roles.manage")
	v.SetDefault("backend.baseURL", "")
	v.SetDefault("backend.token", "")
	v.SetDefault("backend.timeoutSec", 15)
	v.SetDefault("backend.retries", 1)
	v.SetDefault("backend.rps", 50)
	v.SetDefault("backend.burst", 100)
	v.SetDefault("backend.fetchPageSize", 1000)
	v.SetDefault("cache.statsTTLSec", 30)
	v.SetDefault("cache.refTTLSec", 300)
	v.SetDefault("cache.viewStateTTLSec", 1800)
	v.SetDefault("i18n.default", "en")
	v.SetDefault("membership.pageSize", 10)
}

// Load 读取 yaml，APP_ 前缀环境变量覆盖（APP_BACKEND_BASEURL 之类）
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: backend.baseURL is required")
	}
	if c.JWT.Secret == "" {
		return nil, fmt.Errorf("config: jwt.secret is required")
	}
	return &c, nil
}
