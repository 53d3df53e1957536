package lbengine

import (
	"context"
	"time"

	"github.com/leafbridge/leafbridge-hello/lbexec"
	"github.com/leafbridge/leafbridge-hello/lbhelloevent"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
	"github.com/leafbridge/leafbridge-hello/lbunit"
)

// HandlerEngine manages execution of a single handler within an invocation.
// It is the only way handler bodies reach the controller's collaborators.
type HandlerEngine struct {
	invocation string
	handler    lbreactive.Handler
	endpoint   lbunit.Endpoint
	opts       Options
}

// invoke runs body and then commit, recording the start and end of the
// handler. commit is only called if body succeeds.
func (h *HandlerEngine) invoke(ctx context.Context, body Body, commit func() error) error {
	// Record the start of the handler.
	h.opts.Events.Record(lbhelloevent.HandlerStarted{
		Invocation: h.invocation,
		Handler:    h.handler.ID,
		Label:      h.handler.Label,
	})

	// Record the time that the handler started.
	started := time.Now()

	err := body(ctx, h)
	if err == nil {
		err = commit()
	}

	// Record the time that the handler stopped.
	stopped := time.Now()

	// Record the end of the handler.
	event := lbhelloevent.HandlerStopped{
		Invocation: h.invocation,
		Handler:    h.handler.ID,
		Label:      h.handler.Label,
		Started:    started,
		Stopped:    stopped,
		Err:        err,
	}
	if err == nil {
		event.Set = h.handler.Sets
	}
	h.opts.Events.Record(event)

	return err
}

// Config returns the configuration record for the invocation.
func (h *HandlerEngine) Config() lbunit.Config {
	return h.opts.Config
}

// Endpoint returns the database endpoint. It is only meaningful when the
// database availability flag is set.
func (h *HandlerEngine) Endpoint() lbunit.Endpoint {
	return h.endpoint
}

// Tools returns the external programs used by handlers.
func (h *HandlerEngine) Tools() Tools {
	return h.opts.Tools
}

// SystemdDir returns the directory that receives systemd unit files.
func (h *HandlerEngine) SystemdDir() string {
	return h.opts.systemdDir()
}

// Run runs an external command to completion.
func (h *HandlerEngine) Run(ctx context.Context, cmd lbexec.Command) error {
	h.opts.Events.Record(lbhelloevent.CommandStarted{
		Invocation:  h.invocation,
		Handler:     h.handler.ID,
		CommandLine: cmd.String(),
		Dir:         cmd.Dir,
	})

	started := time.Now()
	result, err := h.opts.Runner.Run(ctx, cmd)
	if result.Started.IsZero() {
		result.Started = started
	}
	if result.Stopped.IsZero() {
		result.Stopped = time.Now()
	}

	h.opts.Events.Record(lbhelloevent.CommandStopped{
		Invocation:  h.invocation,
		Handler:     h.handler.ID,
		CommandLine: cmd.String(),
		Dir:         cmd.Dir,
		Output:      result.Output,
		Started:     result.Started,
		Stopped:     result.Stopped,
		Err:         err,
	})

	return err
}

// Render renders the named template to dest.
func (h *HandlerEngine) Render(name, dest string, data map[string]any) error {
	err := h.opts.Renderer.Render(name, dest, data)

	h.opts.Events.Record(lbhelloevent.TemplateRendered{
		Invocation:  h.invocation,
		Handler:     h.handler.ID,
		Template:    name,
		Destination: dest,
		Err:         err,
	})

	return err
}

// SetStatus reports the workload status. Failures to deliver the status are
// recorded but do not fail the handler.
func (h *HandlerEngine) SetStatus(tag lbunit.StatusTag, message string) {
	h.opts.Events.Record(lbhelloevent.StatusChanged{
		Invocation: h.invocation,
		Handler:    h.handler.ID,
		Status:     tag,
		Text:       message,
	})

	if h.opts.Status == nil {
		return
	}
	if err := h.opts.Status.SetStatus(tag, message); err != nil {
		h.opts.Events.Record(lbhelloevent.StatusFailed{
			Invocation: h.invocation,
			Handler:    h.handler.ID,
			Operation:  "set status",
			Err:        err,
		})
	}
}

// OpenPort declares a port as externally reachable.
func (h *HandlerEngine) OpenPort(port int, protocol string) {
	h.opts.Events.Record(lbhelloevent.PortOpened{
		Invocation: h.invocation,
		Handler:    h.handler.ID,
		Port:       lbunit.Port{Number: port, Protocol: protocol},
	})

	if h.opts.Status == nil {
		return
	}
	if err := h.opts.Status.OpenPort(port, protocol); err != nil {
		h.opts.Events.Record(lbhelloevent.StatusFailed{
			Invocation: h.invocation,
			Handler:    h.handler.ID,
			Operation:  "open port",
			Err:        err,
		})
	}
}

// Log records a free-form log line.
func (h *HandlerEngine) Log(text string) {
	h.opts.Events.Record(lbhelloevent.LogLine{
		Invocation: h.invocation,
		Handler:    h.handler.ID,
		Text:       text,
	})
}

// SkipStep records that a step was skipped because its work is already
// done.
func (h *HandlerEngine) SkipStep(step, reason string) {
	h.opts.Events.Record(lbhelloevent.StepSkipped{
		Invocation: h.invocation,
		Handler:    h.handler.ID,
		Step:       step,
		Reason:     reason,
	})
}
