package lbhelloevent

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gentlemanautomaton/structformat"
	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
)

// InvocationStarted is an event that occurs when the controller begins an
// invocation.
type InvocationStarted struct {
	Invocation string
	Flags      lbflag.FlagList
}

// Component identifies the component that generated the event.
func (e InvocationStarted) Component() string {
	return "invocation"
}

// Level returns the level of the event.
func (e InvocationStarted) Level() slog.Level {
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e InvocationStarted) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, "")
	if len(e.Flags) == 0 {
		builder.WriteStandard("Starting invocation with no flags set.")
	} else {
		builder.WriteStandard(fmt.Sprintf("Starting invocation with flags: %s.", e.Flags))
	}

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e InvocationStarted) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e InvocationStarted) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.Any("flags", e.Flags),
	}
}

// InvocationStopped is an event that occurs when the controller finishes an
// invocation.
type InvocationStopped struct {
	Invocation string
	Passes     int
	Ran        []lbreactive.HandlerID
	Flags      lbflag.FlagList
	Started    time.Time
	Stopped    time.Time
	Err        error
}

// Component identifies the component that generated the event.
func (e InvocationStopped) Component() string {
	return "invocation"
}

// Level returns the level of the event.
func (e InvocationStopped) Level() slog.Level {
	if e.Err != nil {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e InvocationStopped) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, "")
	if e.Err != nil {
		builder.WriteStandard(fmt.Sprintf("Stopped invocation due to an error: %s.", e.Err))
	} else {
		n := len(e.Ran)
		builder.WriteStandard(fmt.Sprintf("Completed invocation. %d %s ran.", n, plural(n, "handler", "handlers")))
	}
	builder.WriteNote(e.Duration().Round(time.Millisecond * 10).String())

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e InvocationStopped) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e InvocationStopped) Attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.Int("passes", e.Passes),
		slog.Any("ran", e.Ran),
		slog.Any("flags", e.Flags),
		slog.Time("started", e.Started),
		slog.Time("stopped", e.Stopped),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	return attrs
}

// Duration returns the duration of the invocation.
func (e InvocationStopped) Duration() time.Duration {
	return e.Stopped.Sub(e.Started)
}

// PassStarted is an event that occurs when an evaluation pass starts.
type PassStarted struct {
	Invocation string
	Pass       int
	Snapshot   lbflag.FlagList
}

// Component identifies the component that generated the event.
func (e PassStarted) Component() string {
	return "pass"
}

// Level returns the level of the event.
func (e PassStarted) Level() slog.Level {
	return slog.LevelDebug
}

// Message returns a description of the event.
func (e PassStarted) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, "")
	builder.WritePrimary(fmt.Sprintf("Pass %d", e.Pass))
	builder.WriteStandard(fmt.Sprintf("Evaluating guards against [%s]", e.Snapshot))

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e PassStarted) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e PassStarted) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.Int("pass", e.Pass),
		slog.Any("snapshot", e.Snapshot),
	}
}

// FactEvaluated is an event that occurs when an external fact supplied by
// the hosting environment is evaluated at the start of an invocation.
type FactEvaluated struct {
	Invocation string
	Flag       lbflag.Flag
	Present    bool
	Detail     string
	Err        error
}

// Component identifies the component that generated the event.
func (e FactEvaluated) Component() string {
	return "fact"
}

// Level returns the level of the event.
func (e FactEvaluated) Level() slog.Level {
	if e.Err != nil {
		return slog.LevelError
	}
	return slog.LevelDebug
}

// Message returns a description of the event.
func (e FactEvaluated) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, "")
	builder.WritePrimary(string(e.Flag))
	switch {
	case e.Err != nil:
		builder.WriteStandard(fmt.Sprintf("Unable to evaluate the fact: %s", e.Err))
	case e.Present:
		builder.WriteStandard("Present")
	default:
		builder.WriteStandard("Absent")
	}
	if e.Detail != "" {
		builder.WriteNote(e.Detail)
	}

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e FactEvaluated) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e FactEvaluated) Attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("flag", string(e.Flag)),
		slog.Bool("present", e.Present),
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	return attrs
}
