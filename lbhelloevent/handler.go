package lbhelloevent

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gentlemanautomaton/structformat"
	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
)

// HandlerSkipped is an event that occurs when a handler's guard does not
// hold.
type HandlerSkipped struct {
	Invocation string
	Handler    lbreactive.HandlerID
	Result     lbreactive.GuardResult
}

// Component identifies the component that generated the event.
func (e HandlerSkipped) Component() string {
	return "handler"
}

// Level returns the level of the event.
func (e HandlerSkipped) Level() slog.Level {
	return slog.LevelDebug
}

// Message returns a description of the event.
func (e HandlerSkipped) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	builder.WriteStandard("Skipped")
	builder.WriteNote(e.Result.String())

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e HandlerSkipped) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e HandlerSkipped) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
		slog.Group("guard", "missing", e.Result.Missing, "present", e.Result.Present),
	}
}

// HandlerStarted is an event that occurs when a handler starts running.
type HandlerStarted struct {
	Invocation string
	Handler    lbreactive.HandlerID
	Label      string
}

// Component identifies the component that generated the event.
func (e HandlerStarted) Component() string {
	return "handler"
}

// Level returns the level of the event.
func (e HandlerStarted) Level() slog.Level {
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e HandlerStarted) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	if e.Label != "" {
		builder.WriteStandard(fmt.Sprintf("Starting: %s", e.Label))
	} else {
		builder.WriteStandard("Starting")
	}

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e HandlerStarted) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e HandlerStarted) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
	}
}

// HandlerStopped is an event that occurs when a handler stops running.
type HandlerStopped struct {
	Invocation string
	Handler    lbreactive.HandlerID
	Label      string
	Set        lbflag.FlagList
	Started    time.Time
	Stopped    time.Time
	Err        error
}

// Component identifies the component that generated the event.
func (e HandlerStopped) Component() string {
	return "handler"
}

// Level returns the level of the event.
func (e HandlerStopped) Level() slog.Level {
	if e.Err != nil {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e HandlerStopped) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	switch {
	case e.Err != nil:
		builder.WriteStandard(fmt.Sprintf("Stopped due to an error: %s", e.Err))
	case len(e.Set) > 0:
		builder.WriteStandard(fmt.Sprintf("Completed and set %s", e.Set))
	default:
		builder.WriteStandard("Completed")
	}
	builder.WriteNote(e.Duration().Round(time.Millisecond * 10).String())

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e HandlerStopped) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e HandlerStopped) Attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
		slog.Any("set", e.Set),
		slog.Time("started", e.Started),
		slog.Time("stopped", e.Stopped),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	return attrs
}

// Duration returns the duration of the handler.
func (e HandlerStopped) Duration() time.Duration {
	return e.Stopped.Sub(e.Started)
}

// FlagsSaved is an event that occurs when the flag set is persisted after a
// handler completes.
type FlagsSaved struct {
	Invocation string
	Handler    lbreactive.HandlerID
	Flags      lbflag.FlagList
}

// Component identifies the component that generated the event.
func (e FlagsSaved) Component() string {
	return "flags"
}

// Level returns the level of the event.
func (e FlagsSaved) Level() slog.Level {
	return slog.LevelDebug
}

// Message returns a description of the event.
func (e FlagsSaved) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	builder.WriteStandard(fmt.Sprintf("Saved flags: %s", e.Flags))

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e FlagsSaved) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e FlagsSaved) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
		slog.Any("flags", e.Flags),
	}
}

// StepSkipped is an event that occurs when a step within a handler is
// skipped because its work has already been done.
type StepSkipped struct {
	Invocation string
	Handler    lbreactive.HandlerID
	Step       string
	Reason     string
}

// Component identifies the component that generated the event.
func (e StepSkipped) Component() string {
	return "step"
}

// Level returns the level of the event.
func (e StepSkipped) Level() slog.Level {
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e StepSkipped) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	builder.WritePrimary(e.Step)
	builder.WriteStandard(fmt.Sprintf("Skipped: %s", e.Reason))

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e StepSkipped) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e StepSkipped) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
		slog.String("step", e.Step),
		slog.String("reason", e.Reason),
	}
}

// LogLine is a free-form log message emitted by a handler.
type LogLine struct {
	Invocation string
	Handler    lbreactive.HandlerID
	Text       string
}

// Component identifies the component that generated the event.
func (e LogLine) Component() string {
	return "log"
}

// Level returns the level of the event.
func (e LogLine) Level() slog.Level {
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e LogLine) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	builder.WriteStandard(e.Text)

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e LogLine) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e LogLine) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
	}
}
