package lbevent

import (
	"context"
	"log/slog"
)

// LoggedHandler is an event handler that sends events to a structured log
// handler.
type LoggedHandler struct {
	Handler slog.Handler
}

// Name returns a name for the handler.
func (h LoggedHandler) Name() string {
	return "structured-log"
}

// Handle processes the given event record.
func (lh LoggedHandler) Handle(r Record) error {
	h := lh.Handler
	if h == nil {
		h = slog.Default().Handler()
	}
	ctx := context.Background()
	if !h.Enabled(ctx, r.Level()) {
		return nil
	}
	return h.Handle(ctx, r.ToLog())
}
