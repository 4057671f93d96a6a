package rendering

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/flosch/pongo2/v6"
	"github.com/goodwillcoding/configme/pkg/filesystem"
)

// Pongo2Engine renders Django/Jinja2 style templates with pongo2. Templates
// may {% include %} or {% extends %} other templates under the same root.
//
// Unlike GoTemplateEngine, an undefined variable renders as an empty string
// instead of failing, as in Jinja2. Use the "default" filter or an
// {% if %} block to make the fallback explicit.
type Pongo2Engine struct {
	set *pongo2.TemplateSet
}

// NewPongo2Engine creates a pongo2 engine rooted at templatesRoot
func NewPongo2Engine(fsys filesystem.FS, templatesRoot string) Engine {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	loader := &fsLoader{fs: fsys, root: templatesRoot}
	return &Pongo2Engine{set: pongo2.NewSet("configme", loader)}
}

// Render implements Engine
func (e *Pongo2Engine) Render(path string, variables map[string]string) (string, error) {
	tpl, err := e.set.FromFile(path)
	if err != nil {
		return "", fmt.Errorf("loading template: %w", err)
	}

	ctx := make(pongo2.Context, len(variables))
	for k, v := range variables {
		ctx[k] = v
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return out, nil
}

// fsLoader is a pongo2.TemplateLoader reading through filesystem.FS
type fsLoader struct {
	fs   filesystem.FS
	root string
}

func (l *fsLoader) Abs(base, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.root, name)
}

func (l *fsLoader) Get(path string) (io.Reader, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
