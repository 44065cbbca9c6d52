package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(newLogger(os.Stdout, "creator-ledger", "", slog.LevelInfo))
}

// Setup replaces the package logger. Every line carries service and env.
func Setup(service, env, level string) {
	current.Store(newLogger(os.Stdout, service, env, parseLevel(level)))
}

// SetOutput is used by tests to capture log lines.
func SetOutput(w io.Writer) {
	current.Store(newLogger(w, "creator-ledger", "test", slog.LevelDebug))
}

func newLogger(w io.Writer, service, env string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				return slog.Attr{Key: "timestamp", Value: attr.Value}
			case slog.LevelKey:
				return slog.String("severity", strings.ToUpper(attr.Value.String()))
			case slog.MessageKey:
				return slog.Attr{Key: "message", Value: attr.Value}
			}
			return attr
		},
	})

	attrs := []any{slog.String("service", strings.TrimSpace(service))}
	if env = strings.TrimSpace(env); env != "" {
		attrs = append(attrs, slog.String("env", env))
	}
	base := slog.New(handler).With(attrs...)

	// bridge the std logger so echo/asynq output ends up in the same stream
	bridge := slog.NewLogLogger(handler, slog.LevelInfo)
	log.SetOutput(bridge.Writer())
	log.SetFlags(0)

	return base
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// normalize accepts both key/value pairs and the bare-error form
// logger.Error("Repo:Method", err) used across the codebase.
func normalize(args []any) []any {
	if len(args)%2 == 1 {
		if err, ok := args[0].(error); ok && len(args) == 1 {
			return []any{"error", err.Error()}
		}
		return append([]any{"detail"}, args...)
	}
	for i := 1; i < len(args); i += 2 {
		if err, ok := args[i].(error); ok && err != nil {
			args[i] = err.Error()
		}
	}
	return args
}

func Debug(msg string, args ...any) {
	current.Load().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	current.Load().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	current.Load().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	current.Load().Error(msg, normalize(args)...)
}

// Adapter routes asynq server logs through this package.
type Adapter struct{}

func (Adapter) Debug(args ...any) { Debug("asynq", "detail", args) }
func (Adapter) Info(args ...any)  { Info("asynq", "detail", args) }
func (Adapter) Warn(args ...any)  { Warn("asynq", "detail", args) }
func (Adapter) Error(args ...any) { Error("asynq", "detail", args) }
func (Adapter) Fatal(args ...any) {
	Error("asynq:fatal", "detail", args)
	os.Exit(1)
}
