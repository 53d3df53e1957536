package lbengine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/leafbridge/leafbridge-hello/lbexec"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
	"github.com/leafbridge/leafbridge-hello/lbtemplate"
	"github.com/leafbridge/leafbridge-hello/lbunit"
	"github.com/leafbridge/leafbridge-hello/localfs"
)

// HTTPPort is the port that gunicorn serves the hello application on.
const HTTPPort = 8000

// GunicornService is the name of the systemd unit that runs gunicorn.
const GunicornService = "gunicorn.service"

// HelloBodies returns the handler bodies for the hello application.
func HelloBodies() BodyMap {
	return BodyMap{
		lbreactive.InstallHello:    installHello,
		lbreactive.SetupDatabase:   setupDatabase,
		lbreactive.SetupGunicorn:   setupGunicorn,
		lbreactive.WaitForDatabase: waitForDatabase,
	}
}

func installHello(ctx context.Context, h *HandlerEngine) error {
	config := h.Config()
	if err := config.Require(lbunit.ConfigAppDir, lbunit.ConfigAppVenvDir, lbunit.ConfigAppRepoURL); err != nil {
		return err
	}
	appDir := config.Value(lbunit.ConfigAppDir)
	venvDir := config.Value(lbunit.ConfigAppVenvDir)

	h.SetStatus(lbunit.StatusMaintenance, "Installing the hello application")

	if err := cloneAppRepo(ctx, h, config.Value(lbunit.ConfigAppRepoURL), appDir); err != nil {
		return err
	}
	if err := createVirtualenv(ctx, h, venvDir); err != nil {
		return err
	}
	if err := installRequirements(ctx, h, venvDir, appDir); err != nil {
		return err
	}

	h.Log("Finished installing the hello application")
	return nil
}

func setupDatabase(ctx context.Context, h *HandlerEngine) error {
	config := h.Config()
	if err := config.Require(lbunit.ConfigAppDir, lbunit.ConfigAppVenvDir); err != nil {
		return err
	}
	appDir := config.Value(lbunit.ConfigAppDir)
	venvDir := config.Value(lbunit.ConfigAppVenvDir)

	h.SetStatus(lbunit.StatusMaintenance, "Setting up the database")

	if err := setupDatabaseCredentials(h, appDir, h.Endpoint()); err != nil {
		return err
	}
	return runMigrations(ctx, h, venvDir, appDir)
}

func setupGunicorn(ctx context.Context, h *HandlerEngine) error {
	config := h.Config()
	if err := config.Require(lbunit.ConfigAppDir, lbunit.ConfigAppVenvDir); err != nil {
		return err
	}
	appDir := config.Value(lbunit.ConfigAppDir)
	venvDir := config.Value(lbunit.ConfigAppVenvDir)

	h.Log("Setting up gunicorn")

	if err := h.Run(ctx, lbexec.Command{
		Path: filepath.Join(venvDir, "bin", "pip"),
		Args: []string{"install", "gunicorn"},
	}); err != nil {
		return err
	}

	unit := filepath.Join(h.SystemdDir(), GunicornService)
	if err := h.Render(lbtemplate.GunicornUnit, unit, map[string]any{
		"app_dir":  appDir,
		"venv_dir": venvDir,
		"port":     HTTPPort,
	}); err != nil {
		return err
	}

	systemctl := h.Tools().Systemctl
	for _, args := range [][]string{
		{"daemon-reload"},
		{"enable", GunicornService},
		{"start", GunicornService},
	} {
		if err := h.Run(ctx, lbexec.Command{Path: systemctl, Args: args}); err != nil {
			return err
		}
	}

	h.OpenPort(HTTPPort, "tcp")
	h.SetStatus(lbunit.StatusActive, "The app is running.")
	return nil
}

func waitForDatabase(ctx context.Context, h *HandlerEngine) error {
	h.Log("Blocked waiting for a PostgreSQL database")
	h.SetStatus(lbunit.StatusBlocked, "A PostgreSQL database is required")
	return nil
}

// cloneAppRepo clones the repository at repoURL into dest unless dest
// already exists.
func cloneAppRepo(ctx context.Context, h *HandlerEngine, repoURL, dest string) error {
	exists, err := localfs.DirExists(dest)
	if err != nil {
		return err
	}
	if exists {
		h.SkipStep("clone", fmt.Sprintf("%s exists already", dest))
		return nil
	}
	h.Log(fmt.Sprintf("Cloning %s to %s", repoURL, dest))
	return h.Run(ctx, lbexec.Command{
		Path: h.Tools().Git,
		Args: []string{"clone", repoURL, dest},
	})
}

// createVirtualenv creates a virtualenv environment at path unless one
// already exists there.
func createVirtualenv(ctx context.Context, h *HandlerEngine, path string) error {
	exists, err := localfs.DirExists(path)
	if err != nil {
		return err
	}
	if exists {
		h.SkipStep("virtualenv", fmt.Sprintf("%s exists already", path))
		return nil
	}
	h.Log(fmt.Sprintf("Creating a new virtualenv environment at %s", path))
	return h.Run(ctx, lbexec.Command{
		Path: h.Tools().Virtualenv,
		Args: []string{path},
	})
}

// installRequirements installs the requirements of the app into the
// virtualenv.
func installRequirements(ctx context.Context, h *HandlerEngine, venvDir, appDir string) error {
	h.Log("Installing the requirements for the hello app")
	return h.Run(ctx, lbexec.Command{
		Path: filepath.Join(venvDir, "bin", "pip"),
		Args: []string{"install", "-r", filepath.Join(appDir, "requirements.txt")},
	})
}

// setupDatabaseCredentials renders the database credentials to the Django
// local settings file.
func setupDatabaseCredentials(h *HandlerEngine, appDir string, db lbunit.Endpoint) error {
	settings := filepath.Join(appDir, "hello", "hello", "settings_local.py")
	h.Log(fmt.Sprintf("Rendering database credentials to %s", settings))
	return h.Render(lbtemplate.SettingsLocal, settings, map[string]any{
		"db_host":     db.Host,
		"db_port":     db.Port,
		"db_name":     db.DBName,
		"db_user":     db.User,
		"db_password": db.Password,
	})
}

// runMigrations runs the Django migrations for the app.
func runMigrations(ctx context.Context, h *HandlerEngine, venvDir, appDir string) error {
	h.Log("Running the migrations")
	return h.Run(ctx, lbexec.Command{
		Path: filepath.Join(venvDir, "bin", "python3"),
		Args: []string{"manage.py", "migrate"},
		Dir:  filepath.Join(appDir, "hello"),
	})
}
