package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/maasoft/sg-gateway/internal/config"
)

// parseLogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger creates the JSON logger on stdout. When LogErrorFile is set,
// error records are also written to a rotating file whose closer is returned.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer) {
	return buildLogger(cfg, os.Stdout)
}

func buildLogger(cfg *config.Config, stdout io.Writer) (*slog.Logger, io.Closer) {
	handler := slog.Handler(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	if cfg.LogErrorFile == "" {
		return slog.New(handler), nil
	}

	errorFile := &lumberjack.Logger{
		Filename:   cfg.LogErrorFile,
		MaxSize:    cfg.LogErrorFileMaxSizeMB,
		MaxBackups: cfg.LogErrorFileMaxBackups,
	}
	errorHandler := slog.NewJSONHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelError})

	return slog.New(&teeHandler{handlers: []slog.Handler{handler, errorHandler}}), errorFile
}

// teeHandler fans every record out to the handlers enabled for its level.
type teeHandler struct {
	handlers []slog.Handler
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &teeHandler{handlers: handlers}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &teeHandler{handlers: handlers}
}
