package logger

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chrona-bot/internal/trace"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level           string // DEBUG, INFO, WARN, ERROR
	Format          string // json or text
	DetailedLogging bool   // adds caller information to every entry
}

// LoadConfigFromEnv loads logging configuration from environment variables
func LoadConfigFromEnv() LogConfig {
	return LogConfig{
		Level:           getEnvOrDefault("LOG_LEVEL", "INFO"),
		Format:          getEnvOrDefault("LOG_FORMAT", "json"),
		DetailedLogging: getEnvOrDefault("LOG_DETAILED", "false") == "true",
	}
}

// Logger is a context-aware structured logger. It is built once at startup and handed to
// every component that logs; there is no package-level instance.
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// New builds a Logger writing single-line entries to stdout.
func New(config LogConfig) (*Logger, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(config.Format, "text") {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(parseLogLevel(config.Level)))

	var opts []zap.Option
	if config.DetailedLogging {
		opts = append(opts, zap.AddCaller())
	}
	return newLogger(zap.New(core, opts...)), nil
}

// NewWithCore wraps an arbitrary zap core, e.g. an observer in tests.
func NewWithCore(core zapcore.Core) *Logger {
	return newLogger(zap.New(core))
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return newLogger(zap.NewNop())
}

func newLogger(z *zap.Logger) *Logger {
	// skip the Logger method and log() so the caller points at our caller
	return &Logger{
		base:  z,
		sugar: z.WithOptions(zap.AddCallerSkip(2)).Sugar(),
	}
}

// With returns a child logger that always carries the given key/value pairs.
func (l *Logger) With(args ...any) *Logger {
	return newLogger(l.base.Sugar().With(args...).Desugar())
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

// parseLogLevel converts string log level to a zap level
func parseLogLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, zapcore.DebugLevel, msg, args)
}

// Info logs an info message
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, zapcore.InfoLevel, msg, args)
}

// Warn logs a warning message
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, zapcore.WarnLevel, msg, args)
}

// Error logs an error message
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, zapcore.ErrorLevel, msg, args)
}

// ErrorWithErr logs an error message with an error object and marks the active span as failed
func (l *Logger) ErrorWithErr(ctx context.Context, msg string, err error, args ...any) {
	if trace.Enabled() && err != nil {
		span := oteltrace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}

	allArgs := append([]any{"error", err}, args...)
	l.log(ctx, zapcore.ErrorLevel, msg, allArgs)
}

// log adds trace and span ids when the context carries an active span
func (l *Logger) log(ctx context.Context, level zapcore.Level, msg string, args []any) {
	if traceID, spanID, ok := trace.GetTraceFields(ctx); ok {
		args = append([]any{"trace_id", traceID, "span_id", spanID}, args...)
	}

	switch level {
	case zapcore.DebugLevel:
		l.sugar.Debugw(msg, args...)
	case zapcore.WarnLevel:
		l.sugar.Warnw(msg, args...)
	case zapcore.ErrorLevel:
		l.sugar.Errorw(msg, args...)
	default:
		l.sugar.Infow(msg, args...)
	}
}
