package rendering

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/goodwillcoding/configme/pkg/filesystem"
)

// GoTemplateEngine renders text/template files. Referencing a variable
// that is not defined is an error rather than "<no value>".
type GoTemplateEngine struct {
	fs   filesystem.FS
	root string
}

// NewGoTemplateEngine creates a text/template engine rooted at templatesRoot
func NewGoTemplateEngine(fsys filesystem.FS, templatesRoot string) Engine {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &GoTemplateEngine{fs: fsys, root: templatesRoot}
}

// Render implements Engine
func (e *GoTemplateEngine) Render(path string, variables map[string]string) (string, error) {
	source, err := e.fs.ReadFile(filepath.Join(e.root, path))
	if err != nil {
		return "", fmt.Errorf("template not found: %s: %w", path, err)
	}

	tmpl, err := template.New(path).Option("missingkey=error").Parse(string(source))
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, variables); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return out.String(), nil
}
