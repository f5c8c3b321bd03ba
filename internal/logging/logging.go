// internal/logging/logging.go
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where the run log goes.
type Options struct {
	Name  string // logger name, shown on every line
	File  string // LOG_FILE; empty means stderr only
	Debug bool

	Stderr zapcore.WriteSyncer // nil means os.Stderr
}

// EncoderConfig is the console layout used for both the file and stderr.
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

// New builds a logger that tees every line to the log file and stderr.
// The file is opened up front so an unwritable LOG_FILE fails the run.
func New(opts Options) (*zap.SugaredLogger, func() error, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if opts.Debug {
		level.SetLevel(zap.DebugLevel)
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = zapcore.Lock(os.Stderr)
	}

	enc := zapcore.NewConsoleEncoder(EncoderConfig())
	cores := []zapcore.Core{zapcore.NewCore(enc, stderr, level)}

	closer := func() error { return nil }

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open %s: %w", opts.File, err)
		}
		_ = f.Close()

		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    64, // megabytes
			MaxBackups: 7,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(lj), level))
		closer = lj.Close
	}

	logger := zap.New(zapcore.NewTee(cores...)).Named(opts.Name)

	return logger.Sugar(), func() error {
		_ = logger.Sync()
		return closer()
	}, nil
}
