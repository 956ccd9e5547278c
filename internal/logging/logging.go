// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// Level is a level name such as "debug" or "warn". Empty means info.
	Level string
	// Development selects a coloured console encoder instead of JSON.
	Development bool
	// File, when set, tees every entry into a rotated log file.
	File string
	// MaxSizeMB is the rotation threshold for File. Zero uses 50.
	MaxSizeMB int
}

// New builds a logger writing to stderr and, optionally, to a rotated file.
func New(opts Options) *zap.Logger {
	level := ParseLevel(opts.Level, zapcore.InfoLevel)
	console := zapcore.NewCore(encoder(opts.Development), zapcore.Lock(os.Stderr), level)

	core := console
	if opts.File != "" {
		size := opts.MaxSizeMB
		if size <= 0 {
			size = 50
		}
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    size,
			MaxBackups: 3,
			Compress:   true,
		})
		core = zapcore.NewTee(console, zapcore.NewCore(encoder(false), file, level))
	}
	return zap.New(core, zap.AddCaller())
}

func encoder(development bool) zapcore.Encoder {
	if development {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// ParseLevel maps debug, info, warn/warning, error and fatal (any case) to a
// zap level, returning def for anything else.
func ParseLevel(s string, def zapcore.Level) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return def
	}
}

// RuleFields renders the common run attributes as structured fields.
func RuleFields(notation, topology string, state int, algorithm string) []zap.Field {
	return []zap.Field{
		zap.String("rule", notation),
		zap.String("topology", topology),
		zap.Int("state", state),
		zap.String("algorithm", algorithm),
	}
}
