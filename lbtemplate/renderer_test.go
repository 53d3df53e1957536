package lbtemplate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leafbridge/leafbridge-hello/lbtemplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSettings(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "hello", "hello", "settings_local.py")
	renderer := lbtemplate.NewFileRenderer("")

	err := renderer.Render(lbtemplate.SettingsLocal, dest, map[string]any{
		"db_host":     "10.0.0.5",
		"db_port":     5432,
		"db_name":     "hello",
		"db_user":     "hello",
		"db_password": `pa"ss`,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"HOST": "10.0.0.5"`)
	assert.Contains(t, out, `"PORT": "5432"`)
	assert.Contains(t, out, `"PASSWORD": "pa\"ss"`)
}

func TestRenderGunicornUnit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "gunicorn.service")
	err := lbtemplate.NewFileRenderer("").Render(lbtemplate.GunicornUnit, dest, map[string]any{
		"app_dir":  "/srv/app",
		"venv_dir": "/srv/venv",
		"port":     8000,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WorkingDirectory=/srv/app/hello")
	assert.Contains(t, string(data), "ExecStart=/srv/venv/bin/gunicorn --workers 3 --bind 0.0.0.0:8000 hello.wsgi:application")
}

func TestRenderFailures(t *testing.T) {
	dir := t.TempDir()
	renderer := lbtemplate.NewFileRenderer("")

	err := renderer.Render(lbtemplate.GunicornUnit, filepath.Join(dir, "unit"), map[string]any{"app_dir": "/srv/app"})
	assert.Error(t, err, "missing keys are errors")
	_, statErr := os.Stat(filepath.Join(dir, "unit"))
	assert.True(t, os.IsNotExist(statErr), "nothing is written when rendering fails")

	err = renderer.Render("missing.tmpl", filepath.Join(dir, "other"), nil)
	assert.Error(t, err)
}

func TestRenderOverrideDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.tmpl"), []byte("hello {{ .name }}\n"), 0o644))

	dest := filepath.Join(dir, "out.txt")
	require.NoError(t, lbtemplate.NewFileRenderer(dir).Render("custom.tmpl", dest, map[string]any{"name": "world"}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(data))
}
