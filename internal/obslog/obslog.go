// Package obslog wraps zap with a small configuration surface: a
// severity, an optional rotating file destination, and a run-id field
// helper for tagging every log line from one Join call with the same
// correlation id.
package obslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Severity names the levels this engine emits.
type Severity string

const (
	Debug Severity = "DEBUG"
	Info  Severity = "INFO"
	Warn  Severity = "WARN"
	Error Severity = "ERROR"
)

func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case Debug:
		return zapcore.DebugLevel
	case Warn:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Config configures a Logger.
type Config struct {
	Level Severity
	// FilePath, if non-empty, adds a rotating file sink via lumberjack
	// alongside the stderr console sink.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// Logger wraps a zap.Logger with the run-id field convention this
// engine uses to correlate all log lines from one Join call.
type Logger struct {
	z *zap.Logger
}

// New builds a Logger from cfg. A nil cfg yields INFO-level stderr
// logging only.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = &Config{Level: Info}
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "severity",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	level := zap.NewAtomicLevelAt(cfg.Level.zapLevel())
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(os.Stderr), level),
	}

	if cfg.FilePath != "" {
		maxSize := cfg.MaxSizeMB
		if maxSize == 0 {
			maxSize = 50
		}
		maxBackups := cfg.MaxBackups
		if maxBackups == 0 {
			maxBackups = 3
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotator), level))
	}

	core := zapcore.NewTee(cores...)
	return &Logger{z: zap.New(core)}, nil
}

// Noop returns a Logger that discards everything, for tests and for
// callers that pass no logger to Join.
func Noop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// WithRunID returns a child Logger that tags every line with run_id,
// the correlation id minted once per Join call.
func (l *Logger) WithRunID(runID string) *Logger {
	return &Logger{z: l.z.With(zap.String("run_id", runID))}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

// Sync flushes buffered log entries.
func (l *Logger) Sync() error { return l.z.Sync() }
