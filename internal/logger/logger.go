package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jwebster45206/cipher-engine/internal/config"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
)

type contextKey struct{}

// Setup configures the global slog logger based on environment
func Setup(cfg *config.Config) *slog.Logger {
	return New(cfg, os.Stdout)
}

// New builds a logger writing to w and sets it as the default. Production
// gets JSON lines, everything else the text handler.
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(w, opts)
	}

	log := slog.New(handler).With("service", "cipher-engine")
	slog.SetDefault(log)
	return log
}

// NewContext returns a copy of ctx that carries log.
func NewContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext returns the logger stored by NewContext, or fallback when ctx
// has none.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return fallback
}

// WithRequestID adds request ID to logger context
func WithRequestID(log *slog.Logger, requestID string) *slog.Logger {
	return log.With("request_id", requestID)
}

// WithProgress tags entries with the player session.
func WithProgress(log *slog.Logger, id uuid.UUID) *slog.Logger {
	return log.With("progress_id", id.String())
}

// WithCipher tags entries with the cipher being worked on.
func WithCipher(log *slog.Logger, id ciphers.ID) *slog.Logger {
	return log.With("cipher", string(id))
}

// WithChapter tags entries with a chapter number.
func WithChapter(log *slog.Logger, n int) *slog.Logger {
	return log.With("chapter", n)
}

// WithError adds error to logger context
func WithError(log *slog.Logger, err error) *slog.Logger {
	return log.With("error", err.Error())
}
