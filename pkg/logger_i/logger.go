package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/akolanti/CaptionSpeech/internal/config"
)

type Logger struct {
	inner *slog.Logger
}

func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter swaps the default handler, tests point it at a buffer.
func InitWithWriter(w io.Writer) {
	options := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	var handler slog.Handler
	if config.IS_PROD {
		options.Level = config.LOG_LEVEL_PROD
		options.AddSource = true
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	slog.SetDefault(slog.New(handler))
}

func NewLogger(section string) *Logger {
	return &Logger{
		inner: slog.Default().With("component", section),
	}
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.inner.Error(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.inner.Warn(msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.inner.Debug(msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		inner: l.inner.With(args...),
	}
}

// FromContext attaches the request trace id when one is present.
func (l *Logger) FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok && traceId != "" {
		return l.With(config.TRACE_ID_KEY, traceId)
	}
	return l
}
