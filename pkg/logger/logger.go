package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or console
	File   string // optional rotated log file, written next to stderr
}

func New(level, format string) (*zap.Logger, error) {
	return NewWithOptions(Options{Level: level, Format: format})
}

func NewWithOptions(opts Options) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch opts.Format {
	case "json", "":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console":
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	ws := zapcore.Lock(zapcore.AddSync(os.Stderr))
	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename: opts.File,
			MaxSize:  64, // MB
			MaxAge:   14,
			Compress: true,
		}
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(rotated))
	}

	core := zapcore.NewCore(enc, ws, zap.NewAtomicLevelAt(lvl))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
