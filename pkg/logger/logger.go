package logger

import (
	"mindcare_backend/internal/config"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Log 在 InitLogger 之前是 no-op，保证单元测试里直接调用不会 panic
	Log = zap.NewNop()
	// Audit 管理员越权操作（补录心情、手动跑任务）的审计日志，不受 server.mode 影响
	Audit = zap.NewNop()
)

var level = zap.NewAtomicLevelAt(zap.InfoLevel)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "time",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

func rotatingFile(cfg config.LogConfig, name string, maxAgeDays int) zapcore.WriteSyncer {
	dir := cfg.Dir
	if dir == "" {
		dir = "logs"
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	})
}

func InitLogger(cfg *config.Config) {
	ApplyMode(cfg.Server.Mode)

	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			rotatingFile(cfg.Log, "app.log", cfg.Log.MaxAgeDays),
			level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		),
	)
	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))

	auditCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		rotatingFile(cfg.Log, "audit.log", cfg.Log.AuditMaxAgeDays),
		zap.InfoLevel,
	)
	// 审计记录同时进入主日志，便于按请求排查
	Audit = zap.New(zapcore.NewTee(auditCore, core), zap.AddCaller()).Named("audit")
}

// ApplyMode 根据 server.mode 切换日志级别，配置热更新时调用
func ApplyMode(mode string) {
	if mode == "debug" {
		level.SetLevel(zap.DebugLevel)
		return
	}
	level.SetLevel(zap.InfoLevel)
}
