// Package logging sets up the process-wide slog logger with a handler that
// folds context-carried attributes into every record.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

type ctxKey string

const slogFields ctxKey = "slog_fields"

// ContextHandler wraps another slog handler and adds any attributes carried
// by the record's context via AppendCtx.
type ContextHandler struct {
	slog.Handler
}

func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}
	if err := h.Handler.Handle(ctx, r); err != nil {
		return fmt.Errorf("handling log record: %w", err)
	}
	return nil
}

// AppendCtx attaches an attribute to the context so every record logged with
// it carries the attribute.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		v = append(v, attr)
		return context.WithValue(parent, slogFields, v)
	}
	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// Setup installs the default logger. Interactive sessions keep the terminal
// quiet at warn level; --verbose raises to debug.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(ContextHandler{slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})})
	slog.SetDefault(log)
	return log
}
