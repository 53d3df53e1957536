package lbengine

import (
	"github.com/leafbridge/leafbridge-hello/lbevent"
	"github.com/leafbridge/leafbridge-hello/lbexec"
	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
	"github.com/leafbridge/leafbridge-hello/lbtemplate"
	"github.com/leafbridge/leafbridge-hello/lbunit"
)

// Options hold the collaborators and settings of a controller.
type Options struct {
	// Events receives events that occur during an invocation.
	Events lbevent.Recorder

	// Store holds the persisted flag set. It is required.
	Store lbflag.Store

	// Config is the configuration record for the invocation.
	Config lbunit.Config

	// Database supplies the database endpoint when it is available. If nil,
	// the database is never available.
	Database lbunit.EndpointSource

	// Runner runs external commands. It is required.
	Runner lbexec.Runner

	// Renderer renders templates to files. It is required.
	Renderer lbtemplate.Renderer

	// Status receives status reports and port declarations. If nil, status
	// is only recorded as events.
	Status lbunit.StatusSink

	// Behavior adjusts the response to handler failures.
	Behavior lbreactive.Behavior

	// MaxPasses limits the number of evaluation passes within one
	// invocation. Values less than 1 mean one pass.
	MaxPasses int

	// Tools names the external programs used by handlers.
	Tools Tools

	// SystemdDir is the directory that receives systemd unit files. If
	// empty, DefaultSystemdDir is used.
	SystemdDir string
}

// DefaultSystemdDir is the default location of systemd unit files.
const DefaultSystemdDir = "/etc/systemd/system"

// Tools names the external programs used by handlers. Empty fields fall
// back to their defaults.
type Tools struct {
	Git        string
	Virtualenv string
	Systemctl  string
}

// withDefaults returns a copy of tools with empty fields filled in.
func (tools Tools) withDefaults() Tools {
	if tools.Git == "" {
		tools.Git = "git"
	}
	if tools.Virtualenv == "" {
		tools.Virtualenv = "virtualenv"
	}
	if tools.Systemctl == "" {
		tools.Systemctl = "systemctl"
	}
	return tools
}

func (opts Options) passes() int {
	if opts.MaxPasses < 1 {
		return 1
	}
	return opts.MaxPasses
}

func (opts Options) systemdDir() string {
	if opts.SystemdDir == "" {
		return DefaultSystemdDir
	}
	return opts.SystemdDir
}
