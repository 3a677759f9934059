// Package logger builds zap loggers from the strake log configuration.
package logger

import (
	"os"

	"github.com/quantarc/strake/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zap logger writing to the console, a rotated log file or
// both, depending on cfg.Output. Unknown levels fall back to info.
func New(cfg config.LogConfig) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zapcore.InfoLevel)
	}

	encConsole := zap.NewProductionEncoderConfig()
	encConsole.EncodeTime = zapcore.ISO8601TimeEncoder
	encConsole.EncodeLevel = zapcore.CapitalColorLevelEncoder

	encFile := zap.NewProductionEncoderConfig()
	encFile.EncodeTime = zapcore.ISO8601TimeEncoder
	encFile.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core
	if cfg.Output == "file" || cfg.Output == "both" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encFile),
			zapcore.AddSync(rotated),
			level,
		))
	}
	if cfg.Output == "console" || cfg.Output == "both" || len(cores) == 0 {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encConsole),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
