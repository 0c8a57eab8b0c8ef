package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlog "gorm.io/gorm/logger"

	corelog "github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/logger"
)

var ErrUnsupportedDriver = errors.New("unsupported db driver")

// Opts 审计库连接参数，只支持 mysql / postgres
type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
	Log                *zap.Logger
}

var gormLevels = map[string]gormlog.LogLevel{
	"silent": gormlog.Silent,
	"error":  gormlog.Error,
	"warn":   gormlog.Warn,
	"info":   gormlog.Info,
}

func (o Opts) logger() gormlog.Interface {
	lvl, ok := gormLevels[o.LogLevel]
	if !ok {
		lvl = gormlog.Warn
	}
	if o.Log == nil {
		return gormlog.Default.LogMode(lvl)
	}
	sink := log.New(corelog.ToWriter(o.Log.Named("gorm"), zapcore.InfoLevel), "", 0)
	return gormlog.New(sink, gormlog.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}

func (o Opts) dialector() (gorm.Dialector, string, error) {
	switch o.Driver {
	case "mysql":
		dsn, err := mysqlDSN(o.DSN, o.Username, o.Password)
		if err != nil {
			return nil, "", err
		}
		return mysql.Open(dsn), dsn, nil
	case "postgres":
		dsn := postgresDSN(o.DSN, o.Username, o.Password)
		return postgres.Open(dsn), dsn, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
	}
}

func NewGorm(o Opts) (*gorm.DB, error) {
	dial, dsn, err := o.dialector()
	if err != nil {
		return nil, err
	}
	if o.Log != nil {
		o.Log.Info("opening audit database", zap.String("driver", o.Driver), zap.String("dsn", maskDSN(o.Driver, dsn)))
	}
	return Open(dial, o)
}

// Open 测试里可直接传 sqlmock 连接的 dialector
func Open(dial gorm.Dialector, o Opts) (*gorm.DB, error) {
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:                 o.logger(),
		SkipDefaultTransaction: true, // 审计只有单条插入
	})
	if err != nil {
		return nil, err
	}
	pool, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(o.MaxIdleConns)
	}
	if o.ConnMaxLifetimeMin > 0 {
		pool.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	}
	return db, nil
}
