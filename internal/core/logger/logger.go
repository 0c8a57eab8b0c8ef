package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/config"
)

type Options struct {
	Level  string // debug / info / warn / error，非法值按 info
	JSON   bool   // 生产用 JSON，本地用彩色控制台
	App    string // 每行都带上 app / env
	Env    string
	Rotate config.LogFile
	Out    io.Writer // 默认 stdout
}

func FromConfig(c config.Log, app config.App) (*zap.Logger, func()) {
	return Build(Options{Level: c.Level, JSON: c.JSON, App: app.Name, Env: app.Env, Rotate: c.File})
}

func encoder(json bool) zapcore.Encoder {
	if json {
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "ts"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeCaller = zapcore.ShortCallerEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(ec)
}

// Build 返回 logger 和退出前调用的 flush
func Build(opt Options) (*zap.Logger, func()) {
	lvl, err := zapcore.ParseLevel(opt.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	enc := encoder(opt.JSON)

	out := opt.Out
	if out == nil {
		out = os.Stdout
	}
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(out), lvl)}

	f := opt.Rotate
	if f.Enable && f.Filename != "" {
		// 文件始终 JSON，便于采集
		cores = append(cores, zapcore.NewCore(encoder(true), zapcore.AddSync(&lumberjack.Logger{
			Filename:   f.Filename,
			MaxSize:    max(1, f.MaxSizeMB),
			MaxBackups: max(0, f.MaxBackups),
			MaxAge:     max(0, f.MaxAgeDays),
			Compress:   f.Compress,
		}), lvl))
	}

	core := zapcore.NewTee(cores...)
	// debug 时不采样，排查成员页问题需要完整日志
	if lvl > zapcore.DebugLevel {
		core = zapcore.NewSamplerWithOptions(core, time.Second, 100, 100)
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if opt.App != "" {
		opts = append(opts, zap.Fields(zap.String("app", opt.App), zap.String("env", opt.Env)))
	}
	l := zap.New(core, opts...)
	return l, func() { _ = l.Sync() }
}

type lineWriter struct {
	l     *zap.Logger
	level zapcore.Level
}

func (w *lineWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\r\n")
	if ce := w.l.Check(w.level, msg); ce != nil {
		ce.Write()
	}
	return len(p), nil
}

// ToWriter gin 的 DefaultWriter 之类只接受 io.Writer 的地方用
func ToWriter(l *zap.Logger, level zapcore.Level) io.Writer {
	return &lineWriter{l: l, level: level}
}

func RedirectStdLog(l *zap.Logger, level zapcore.Level) func() {
	undo, _ := zap.RedirectStdLogAt(l, level)
	return undo
}
