// Package logx is a thin process-wide logger backed by zap.
package logx

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int8

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps a config string to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	atom   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	once   sync.Once
	logger *zap.SugaredLogger
)

func base() *zap.SugaredLogger {
	once.Do(func() {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "ts"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.Lock(os.Stdout),
			atom,
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	})
	return logger
}

// SetLevel changes the minimum level at runtime
func SetLevel(l Level) {
	atom.SetLevel(l.zapLevel())
}

// Sync flushes buffered entries
func Sync() {
	_ = base().Sync()
}

func Debugf(format string, args ...any) { base().Debugf(format, args...) }

func Info(args ...any)                 { base().Info(args...) }
func Infof(format string, args ...any) { base().Infof(format, args...) }

func Warn(args ...any)                 { base().Warn(args...) }
func Warnf(format string, args ...any) { base().Warnf(format, args...) }

func Error(args ...any)                 { base().Error(args...) }
func Errorf(format string, args ...any) { base().Errorf(format, args...) }

func Fatalf(format string, args ...any) { base().Fatalf(format, args...) }
