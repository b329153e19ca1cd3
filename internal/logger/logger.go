package logger

import (
	"context"
	"os"
	"path/filepath"

	"blogfeed/internal/config"
	"blogfeed/internal/reqctx"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log до InitLogger: no-op.
var Log = zap.NewNop()

func InitLogger(cfg *config.Config) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		panic("не удалось создать папку для логов: " + err.Error())
	}

	logLevel := parseLevel(cfg.LogLevel)

	if cfg.Log == "dev" {
		devCfg := zap.NewDevelopmentConfig()
		devCfg.Level = zap.NewAtomicLevelAt(logLevel)
		logger, _ := devCfg.Build()
		Log = logger
		return
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:      "time",
		LevelKey:     "level",
		MessageKey:   "message",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "app.log"),
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     7,
		Compress:   true,
	})

	console := zapcore.Lock(os.Stdout)

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, logLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), console, logLevel),
	)

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// WithCtx возвращает логгер с request_id и user_id из контекста запроса.
func WithCtx(ctx context.Context) *zap.Logger {
	l := Log
	if ctx == nil {
		return l
	}
	if rid, ok := reqctx.GetRequestID(ctx); ok {
		l = l.With(zap.String("request_id", rid))
	}
	if uid, ok := reqctx.GetUserID(ctx); ok {
		l = l.With(zap.String("user_id", uid))
	}
	return l
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
