package lbevent

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
)

const timestampFormat = "2006-01-02 15:04:05"

// BasicHandler is an event handler that prints timestamped event messages
// to an io.Writer.
type BasicHandler struct {
	w       io.Writer
	min     slog.Level
	details bool
}

// NewBasicHandler returns a BasicHandler that will write to w.
// Events below the provided minimum level will be ignored. Event details,
// such as command output, are printed when the minimum level is debug.
func NewBasicHandler(w io.Writer, min slog.Level) BasicHandler {
	return BasicHandler{
		w:       w,
		min:     min,
		details: min <= slog.LevelDebug,
	}
}

// Name returns a name for the handler.
func (h BasicHandler) Name() string {
	return "basic"
}

// Handle processes the given event record.
func (h BasicHandler) Handle(r Record) error {
	if r.Level() < h.min {
		return nil
	}
	level := fmt.Sprintf("%-6s", r.Level().String()+":")
	if c := levelColor(r.Level()); c != nil {
		level = c.Sprint(level)
	}
	if _, err := fmt.Fprintf(h.w, "%s: %s %s\n", r.Time().Local().Format(timestampFormat), level, r.Message()); err != nil {
		return err
	}
	if h.details {
		if details := r.Details(); details != "" {
			if _, err := fmt.Fprintf(h.w, "%s\n", details); err != nil {
				return err
			}
		}
	}
	return nil
}

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed)
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow)
	case level < slog.LevelInfo:
		return color.New(color.Faint)
	default:
		return nil
	}
}
