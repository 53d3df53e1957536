package lbexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/leafbridge/leafbridge-hello/internal/mergereader"
)

// Command describes an external command to run.
type Command struct {
	Path string
	Args []string
	Dir  string
}

// String returns the command line as a single string, quoting arguments that
// contain spaces.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, part := range append([]string{c.Path}, c.Args...) {
		if part == "" || strings.ContainsAny(part, " \t\"'") {
			part = fmt.Sprintf("%q", part)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

// Result holds information about a command that has run.
type Result struct {
	Output  string
	Started time.Time
	Stopped time.Time
}

// Duration returns the duration of the command.
func (r Result) Duration() time.Duration {
	return r.Stopped.Sub(r.Started)
}

// Runner runs external commands. It returns an error if the command could
// not be started or exited with a non-zero status.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands as child processes of the current process.
type ExecRunner struct {
	// Console receives a copy of the combined command output as it is
	// produced. It may be nil.
	Console io.Writer

	// WaitDelay is the amount of time a command has to exit after its
	// context is cancelled before it is killed. Zero means one minute.
	WaitDelay time.Duration
}

// Run runs cmd and waits for it to complete.
func (r ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Path == "" {
		return Result{}, errors.New("the command has no executable path")
	}

	// Check for cancellation before starting the command.
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Prepare a command that will be terminated when ctx is cancelled.
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.WaitDelay = r.WaitDelay
	if c.WaitDelay == 0 {
		c.WaitDelay = time.Minute
	}

	// Capture stdout and stderr separately so that they can be merged.
	stdout, err := c.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", cmd, err)
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", cmd, err)
	}

	// Prepare a buffer to hold the combined command output.
	var output bytes.Buffer
	var w io.Writer = &output
	var console *consoleWriter
	if r.Console != nil {
		console = &consoleWriter{w: r.Console}
		w = io.MultiWriter(&output, console)
	}

	result := Result{Started: time.Now()}

	// Start the command.
	err = c.Start()

	// If the command started successfully, copy its combined output and
	// wait for it to finish. The pipes must be drained before Wait.
	if err == nil {
		merged := mergereader.New(stdout, stderr)
		_, copyErr := io.Copy(w, merged)
		if copyErr != nil {
			io.Copy(io.Discard, merged)
		}
		err = errors.Join(c.Wait(), copyErr)
	}

	// A console failure does not interrupt the command, but it is reported.
	if console != nil && console.err != nil {
		err = errors.Join(err, fmt.Errorf("failed to write command output to the console: %w", console.err))
	}

	result.Stopped = time.Now()
	result.Output = output.String()

	if err != nil {
		return result, fmt.Errorf("%s: %w", cmd, err)
	}
	return result, nil
}

// consoleWriter passes output to a console until the console returns an
// error. After that it discards output so that the command's pipes keep
// draining.
type consoleWriter struct {
	w   io.Writer
	err error
}

func (c *consoleWriter) Write(p []byte) (int, error) {
	if c.err == nil {
		if _, err := c.w.Write(p); err != nil {
			c.err = err
		}
	}
	return len(p), nil
}
