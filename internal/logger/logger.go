package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

var globalLogger = slog.Default()

// LogLevel represents different log levels
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logger configuration
type Config struct {
	Level      LogLevel
	OutputPath string // file path, "stdout" or empty for stdout
	Format     string // "json" or "text"
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// AlsoStdout duplicates file output to stdout.
	AlsoStdout bool
}

var rotator *lumberjack.Logger

// InitWithConfig initializes logger with custom config
func InitWithConfig(config Config) error {
	return InitWithWriter(config, os.Stdout)
}

// InitWithWriter is InitWithConfig with console output sent to w
func InitWithWriter(config Config, w io.Writer) error {
	globalLogger = New(config, w)
	slog.SetDefault(globalLogger)
	return nil
}

// New builds a logger for config. Stdout output goes to stdout, file output
// goes through a rotating writer.
func New(config Config, stdout io.Writer) *slog.Logger {
	var output io.Writer
	if config.OutputPath == "" || config.OutputPath == "stdout" {
		output = stdout
	} else {
		if rotator != nil {
			_ = rotator.Close()
		}
		rotator = &lumberjack.Logger{
			Filename:   config.OutputPath,
			MaxSize:    orDefault(config.MaxSizeMB, 10),
			MaxBackups: orDefault(config.MaxBackups, 5),
			MaxAge:     orDefault(config.MaxAgeDays, 30),
			Compress:   true,
		}
		output = rotator
		if config.AlsoStdout {
			output = io.MultiWriter(rotator, stdout)
		}
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level.slogLevel(),
		AddSource: config.Level == LevelDebug,
	}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a level name to a LogLevel, defaulting to info.
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Close flushes and closes the log file, if any
func Close() error {
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

type ctxKey struct{}

// IntoContext attaches a request-scoped logger to ctx
func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithContext returns the logger attached to ctx, or the global logger
func WithContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return globalLogger
}

// WithFields returns a logger with additional fields
func WithFields(fields ...any) *slog.Logger {
	return globalLogger.With(fields...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	globalLogger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	globalLogger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	globalLogger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	globalLogger.Error(msg, args...)
}

// Fatal logs a fatal message, closes the log file and exits
func Fatal(msg string, args ...any) {
	globalLogger.Error(msg, args...)
	_ = Close()
	os.Exit(1)
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return globalLogger
}
