package lbhelloevent

import (
	"fmt"
	"log/slog"

	"github.com/gentlemanautomaton/structformat"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
	"github.com/leafbridge/leafbridge-hello/lbunit"
)

// StatusChanged is an event that occurs when a handler reports a new
// workload status.
type StatusChanged struct {
	Invocation string
	Handler    lbreactive.HandlerID
	Status     lbunit.StatusTag
	Text       string
}

// Component identifies the component that generated the event.
func (e StatusChanged) Component() string {
	return "status"
}

// Level returns the level of the event.
func (e StatusChanged) Level() slog.Level {
	if e.Status == lbunit.StatusBlocked {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e StatusChanged) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	builder.WritePrimary(string(e.Status))
	builder.WriteStandard(e.Text)

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e StatusChanged) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e StatusChanged) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
		slog.String("status", string(e.Status)),
		slog.String("message", e.Text),
	}
}

// PortOpened is an event that occurs when a handler declares a network port
// as externally reachable.
type PortOpened struct {
	Invocation string
	Handler    lbreactive.HandlerID
	Port       lbunit.Port
}

// Component identifies the component that generated the event.
func (e PortOpened) Component() string {
	return "status"
}

// Level returns the level of the event.
func (e PortOpened) Level() slog.Level {
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e PortOpened) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	builder.WriteStandard(fmt.Sprintf("Opened port %s", e.Port))

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e PortOpened) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e PortOpened) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
		slog.String("port", e.Port.String()),
	}
}

// StatusFailed is an event that occurs when a status report or port
// declaration could not be delivered. It does not fail the handler.
type StatusFailed struct {
	Invocation string
	Handler    lbreactive.HandlerID
	Operation  string
	Err        error
}

// Component identifies the component that generated the event.
func (e StatusFailed) Component() string {
	return "status"
}

// Level returns the level of the event.
func (e StatusFailed) Level() slog.Level {
	return slog.LevelWarn
}

// Message returns a description of the event.
func (e StatusFailed) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	builder.WriteStandard(fmt.Sprintf("Unable to %s: %s", e.Operation, e.Err))

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e StatusFailed) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e StatusFailed) Attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
		slog.String("operation", e.Operation),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	return attrs
}
