package lbhelloevent

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gentlemanautomaton/structformat"
	"github.com/gentlemanautomaton/structformat/fieldformat"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
)

// CommandStarted is an event that occurs when an external command has
// started.
type CommandStarted struct {
	Invocation  string
	Handler     lbreactive.HandlerID
	CommandLine string
	Dir         string
}

// Component identifies the component that generated the event.
func (e CommandStarted) Component() string {
	return "command"
}

// Level returns the level of the event.
func (e CommandStarted) Level() slog.Level {
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e CommandStarted) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	builder.WritePrimary("Starting command")
	builder.WriteStandard(e.CommandLine)
	if e.Dir != "" {
		builder.WriteNote(e.Dir, fieldformat.Label("dir"))
	}

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e CommandStarted) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e CommandStarted) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
		slog.Group("command", "invocation", e.CommandLine, "dir", e.Dir),
	}
}

// CommandStopped is an event that occurs when an external command has
// stopped.
type CommandStopped struct {
	Invocation  string
	Handler     lbreactive.HandlerID
	CommandLine string
	Dir         string
	Output      string
	Started     time.Time
	Stopped     time.Time
	Err         error
}

// Component identifies the component that generated the event.
func (e CommandStopped) Component() string {
	return "command"
}

// Level returns the level of the event.
func (e CommandStopped) Level() slog.Level {
	if e.Err != nil {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e CommandStopped) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	if e.Err != nil {
		builder.WritePrimary(fmt.Sprintf("Stopped command due to an error: %s", e.Err))
	} else {
		builder.WritePrimary("Completed command")
	}
	builder.WriteStandard(e.CommandLine)
	builder.WriteNote(e.Duration().Round(time.Millisecond * 10).String())

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e CommandStopped) Details() string {
	if e.Output == "" {
		return ""
	}

	return fmt.Sprintf("%s\n%s", e.CommandLine, e.Output)
}

// Attrs returns a set of structured log attributes for the event.
func (e CommandStopped) Attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
		slog.Group("command", "invocation", e.CommandLine, "dir", e.Dir),
		slog.Time("started", e.Started),
		slog.Time("stopped", e.Stopped),
	}
	if e.Output != "" {
		attrs = append(attrs, slog.String("output", e.Output))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	return attrs
}

// Duration returns the duration of the command.
func (e CommandStopped) Duration() time.Duration {
	return e.Stopped.Sub(e.Started)
}

// TemplateRendered is an event that occurs when a template has been rendered
// to a file, or has failed to render.
type TemplateRendered struct {
	Invocation  string
	Handler     lbreactive.HandlerID
	Template    string
	Destination string
	Err         error
}

// Component identifies the component that generated the event.
func (e TemplateRendered) Component() string {
	return "template"
}

// Level returns the level of the event.
func (e TemplateRendered) Level() slog.Level {
	if e.Err != nil {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Message returns a description of the event.
func (e TemplateRendered) Message() string {
	var builder structformat.Builder

	writeScope(&builder, e.Invocation, string(e.Handler))
	builder.WritePrimary(e.Template)
	if e.Err != nil {
		builder.WriteStandard(fmt.Sprintf("Failed to render %s: %s", e.Destination, e.Err))
	} else {
		builder.WriteStandard(fmt.Sprintf("Rendered %s", e.Destination))
	}

	return builder.String()
}

// Details returns additional details about the event. It might include
// multiple lines of text. An empty string is returned when no details
// are available.
func (e TemplateRendered) Details() string {
	return ""
}

// Attrs returns a set of structured log attributes for the event.
func (e TemplateRendered) Attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("invocation", e.Invocation),
		slog.String("handler", string(e.Handler)),
		slog.String("template", e.Template),
		slog.String("destination", e.Destination),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	return attrs
}
