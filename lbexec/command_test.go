package lbexec_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/leafbridge/leafbridge-hello/lbexec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandString(t *testing.T) {
	cmd := lbexec.Command{Path: "/srv/venv/bin/pip", Args: []string{"install", "-r", "/srv/my app/requirements.txt"}}
	assert.Equal(t, `/srv/venv/bin/pip install -r "/srv/my app/requirements.txt"`, cmd.String())
}

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	var console bytes.Buffer
	runner := lbexec.ExecRunner{Console: &console}
	dir := t.TempDir()

	result, err := runner.Run(context.Background(), lbexec.Command{
		Path: "sh",
		Args: []string{"-c", "echo out; echo err >&2; pwd"},
		Dir:  dir,
	})
	require.NoError(t, err)
	assert.Contains(t, result.Output, "out")
	assert.Contains(t, result.Output, "err")
	assert.Contains(t, result.Output, dir)
	assert.Equal(t, result.Output, console.String())
	assert.False(t, result.Stopped.Before(result.Started))
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	_, err := lbexec.ExecRunner{}.Run(context.Background(), lbexec.Command{
		Path: "sh",
		Args: []string{"-c", "exit 3"},
	})
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestExecRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lbexec.ExecRunner{}.Run(ctx, lbexec.Command{Path: "sh"})
	assert.ErrorIs(t, err, context.Canceled)
}

type brokenConsole struct{}

func (brokenConsole) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestExecRunnerBrokenConsole(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	type outcome struct {
		result lbexec.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := lbexec.ExecRunner{Console: brokenConsole{}}.Run(context.Background(), lbexec.Command{
			Path: "sh",
			Args: []string{"-c", "head -c 1000000 /dev/zero"},
		})
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		require.Error(t, out.err)
		assert.Contains(t, out.err.Error(), "broken pipe")
		assert.Len(t, out.result.Output, 1000000)
	case <-time.After(30 * time.Second):
		t.Fatal("the runner did not return after the console failed")
	}
}
