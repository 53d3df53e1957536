package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leafbridge/leafbridge-hello/lbengine"
	"github.com/leafbridge/leafbridge-hello/lbevent"
	"github.com/leafbridge/leafbridge-hello/lbexec"
	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
	"github.com/leafbridge/leafbridge-hello/lbtemplate"
	"github.com/leafbridge/leafbridge-hello/lbunit"
)

// RunCmd performs a single invocation of the hello application's handlers.
type RunCmd struct {
	ConfigFile  string                     `kong:"required,name='config-file',env='HELLO_CONFIG_FILE',help='Path to a YAML file holding the unit configuration.'"`
	State       string                     `kong:"required,name='state',env='HELLO_STATE',help='Path to the persisted flag state. Paths ending in .db use SQLite.'"`
	DBRelation  string                     `kong:"optional,name='db-relation',env='HELLO_DB_RELATION',help='Path to a YAML file holding the database endpoint. The database is unavailable when the file is absent.'"`
	StatusFile  string                     `kong:"optional,name='status-file',env='HELLO_STATUS_FILE',help='Path to a JSON file that receives the unit status.'"`
	TemplateDir string                     `kong:"optional,name='template-dir',help='Directory holding template overrides. The built-in templates are used when empty.'"`
	SystemdDir  string                     `kong:"optional,name='systemd-dir',default='/etc/systemd/system',help='Directory that receives systemd unit files.'"`
	MaxPasses   int                        `kong:"optional,name='max-passes',default='1',help='Maximum number of evaluation passes within the invocation.'"`
	OnError     lbreactive.OnErrorBehavior `kong:"optional,name='on-error',enum='stop,continue',default='stop',help='Whether a failing handler stops the invocation (stop) or lets later handlers run (continue).'"`
	Verbose     bool                       `kong:"optional,name='verbose',short='v',help='Show debug messages on the command line.'"`
	JSON        bool                       `kong:"optional,name='json',help='Write structured JSON logs to standard error in addition to console output.'"`
}

// Run executes the hello run command.
func (cmd RunCmd) Run(ctx context.Context) error {
	// Read the unit configuration.
	config, err := lbunit.LoadConfig(cmd.ConfigFile)
	if err != nil {
		return err
	}

	// Open the flag store.
	store, err := lbflag.OpenStore(cmd.State)
	if err != nil {
		return err
	}
	defer store.Close()

	// Select an event recorder.
	var handler lbevent.Handler
	{
		min := slog.LevelInfo
		if cmd.Verbose {
			min = slog.LevelDebug
		}
		basicHandler := lbevent.NewBasicHandler(os.Stdout, min)
		if cmd.JSON {
			handler = lbevent.MultiHandler{basicHandler, lbevent.LoggedHandler{
				Handler: slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: min}),
			}}
		} else {
			handler = basicHandler
		}
	}
	recorder := lbevent.Recorder{Handler: handler}

	opts := lbengine.Options{
		Events:     recorder,
		Store:      store,
		Config:     config,
		Runner:     lbexec.ExecRunner{Console: os.Stdout},
		Renderer:   lbtemplate.NewFileRenderer(cmd.TemplateDir),
		Behavior:   lbreactive.Behavior{OnError: cmd.OnError},
		MaxPasses:  cmd.MaxPasses,
		SystemdDir: cmd.SystemdDir,
	}
	if cmd.DBRelation != "" {
		opts.Database = lbunit.EndpointFile{Path: cmd.DBRelation}
	}
	if cmd.StatusFile != "" {
		opts.Status = lbunit.StatusFile{Path: cmd.StatusFile}
	}

	// Perform the invocation.
	summary, err := lbengine.NewHelloController(opts).Run(ctx)
	if err != nil && summary.Invocation != "" {
		return fmt.Errorf("invocation %s failed: %w", summary.Invocation, err)
	}
	return err
}
