package lbengine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leafbridge/leafbridge-hello/lbengine"
	"github.com/leafbridge/leafbridge-hello/lbevent"
	"github.com/leafbridge/leafbridge-hello/lbexec"
	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/leafbridge/leafbridge-hello/lbhelloevent"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
	"github.com/leafbridge/leafbridge-hello/lbunit"
	"github.com/stretchr/testify/require"
)

// fakeRunner records commands and simulates the directories that clone and
// virtualenv would create.
type fakeRunner struct {
	commands []lbexec.Command
	fail     func(lbexec.Command) error
}

func (r *fakeRunner) Run(ctx context.Context, cmd lbexec.Command) (lbexec.Result, error) {
	r.commands = append(r.commands, cmd)
	if r.fail != nil {
		if err := r.fail(cmd); err != nil {
			return lbexec.Result{}, err
		}
	}
	switch {
	case cmd.Path == "git" && len(cmd.Args) == 3 && cmd.Args[0] == "clone":
		if err := os.MkdirAll(cmd.Args[2], 0o755); err != nil {
			return lbexec.Result{}, err
		}
	case cmd.Path == "virtualenv" && len(cmd.Args) == 1:
		if err := os.MkdirAll(cmd.Args[0], 0o755); err != nil {
			return lbexec.Result{}, err
		}
	}
	return lbexec.Result{Output: "ok"}, nil
}

func (r *fakeRunner) reset() {
	r.commands = nil
}

type rendered struct {
	name string
	dest string
	data map[string]any
}

type fakeRenderer struct {
	rendered []rendered
	err      error
}

func (r *fakeRenderer) Render(name, dest string, data map[string]any) error {
	if r.err != nil {
		return r.err
	}
	r.rendered = append(r.rendered, rendered{name: name, dest: dest, data: data})
	return nil
}

type fakeStatus struct {
	tags     []lbunit.StatusTag
	messages []string
	ports    []lbunit.Port
}

func (s *fakeStatus) SetStatus(tag lbunit.StatusTag, message string) error {
	s.tags = append(s.tags, tag)
	s.messages = append(s.messages, message)
	return nil
}

func (s *fakeStatus) OpenPort(port int, protocol string) error {
	s.ports = append(s.ports, lbunit.Port{Number: port, Protocol: protocol})
	return nil
}

func (s *fakeStatus) last() lbunit.StatusTag {
	if len(s.tags) == 0 {
		return ""
	}
	return s.tags[len(s.tags)-1]
}

type collector struct {
	events []lbevent.Interface
}

func (c *collector) Name() string {
	return "collector"
}

func (c *collector) Handle(r lbevent.Record) error {
	if record, ok := r.(lbevent.RecordOf[lbevent.Interface]); ok {
		c.events = append(c.events, record.Event)
	}
	return nil
}

// started returns the IDs of handlers that started, in order.
func (c *collector) started() []lbreactive.HandlerID {
	var out []lbreactive.HandlerID
	for _, event := range c.events {
		if e, ok := event.(lbhelloevent.HandlerStarted); ok {
			out = append(out, e.Handler)
		}
	}
	return out
}

func (c *collector) reset() {
	c.events = nil
}

type fixture struct {
	root     string
	appDir   string
	venvDir  string
	store    lbflag.FileStore
	runner   *fakeRunner
	renderer *fakeRenderer
	status   *fakeStatus
	events   *collector
	database lbunit.StaticEndpoint
	config   lbunit.Config
	options  func(*lbengine.Options)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		root:     root,
		appDir:   filepath.Join(root, "srv", "app"),
		venvDir:  filepath.Join(root, "srv", "venv"),
		store:    lbflag.NewFileStore(filepath.Join(root, "state", "flags.json")),
		runner:   &fakeRunner{},
		renderer: &fakeRenderer{},
		status:   &fakeStatus{},
		events:   &collector{},
	}
	f.config = lbunit.NewConfig(map[string]string{
		lbunit.ConfigAppDir:     f.appDir,
		lbunit.ConfigAppVenvDir: f.venvDir,
		lbunit.ConfigAppRepoURL: "git://x",
	})
	return f
}

func (f *fixture) databaseAvailable() {
	f.database = lbunit.StaticEndpoint{
		Available: true,
		Value: lbunit.Endpoint{
			Host:     "10.0.0.5",
			Port:     5432,
			DBName:   "hello",
			User:     "hello",
			Password: "s3cret",
		},
	}
}

func (f *fixture) controller() lbengine.Controller {
	opts := lbengine.Options{
		Events:     lbevent.Recorder{Handler: f.events},
		Store:      f.store,
		Config:     f.config,
		Database:   f.database,
		Runner:     f.runner,
		Renderer:   f.renderer,
		Status:     f.status,
		SystemdDir: filepath.Join(f.root, "systemd"),
	}
	if f.options != nil {
		f.options(&opts)
	}
	return lbengine.NewHelloController(opts)
}

func (f *fixture) invoke(t *testing.T) lbengine.Summary {
	t.Helper()
	summary, err := f.controller().Run(context.Background())
	require.NoError(t, err)
	return summary
}

func (f *fixture) flags(t *testing.T) lbflag.FlagList {
	t.Helper()
	flags, err := f.store.Load(context.Background())
	require.NoError(t, err)
	return flags.Sorted()
}
