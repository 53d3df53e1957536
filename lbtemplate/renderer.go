package lbtemplate

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"text/template"

	"github.com/leafbridge/leafbridge-hello/localfs"
)

// Names of the templates used by the hello application.
const (
	SettingsLocal = "settings_local.py.tmpl"
	GunicornUnit  = "gunicorn.service.tmpl"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// Defaults returns the built-in templates.
func Defaults() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer renders a named template to a destination file.
type Renderer interface {
	Render(name, dest string, data map[string]any) error
}

// FileRenderer renders text templates from a file system and writes the
// results to the local file system.
type FileRenderer struct {
	Templates fs.FS
	Perm      os.FileMode
}

// NewFileRenderer returns a FileRenderer that loads templates from dir. If
// dir is empty, the built-in templates are used.
func NewFileRenderer(dir string) FileRenderer {
	templates := Defaults()
	if dir != "" {
		templates = os.DirFS(dir)
	}
	return FileRenderer{Templates: templates, Perm: 0o644}
}

// Render executes the named template with data and atomically writes the
// output to dest. Keys referenced by the template must be present in data.
func (r FileRenderer) Render(name, dest string, data map[string]any) error {
	if r.Templates == nil {
		return fmt.Errorf("no template source is configured for \"%s\"", name)
	}

	tmpl, err := template.New(name).Option("missingkey=error").ParseFS(r.Templates, name)
	if err != nil {
		return fmt.Errorf("failed to load the \"%s\" template: %w", name, err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return fmt.Errorf("failed to render the \"%s\" template: %w", name, err)
	}

	perm := r.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := localfs.WriteFile(dest, out.Bytes(), perm); err != nil {
		return fmt.Errorf("failed to write \"%s\": %w", dest, err)
	}
	return nil
}
