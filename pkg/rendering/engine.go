package rendering

import (
	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/goodwillcoding/configme/pkg/filesystem"
	"github.com/goodwillcoding/configme/pkg/registry"
)

// DefaultEngine is used when no engine is configured
const DefaultEngine = "gotemplate"

// Engine renders templates addressed by their path relative to a
// templates root. Lookup and render failures are returned as errors.
type Engine interface {
	Render(path string, variables map[string]string) (string, error)
}

// EngineFactory builds an Engine reading templates below templatesRoot
type EngineFactory func(fsys filesystem.FS, templatesRoot string) Engine

var engines = registry.New[EngineFactory]()

func init() {
	registry.MustRegister(engines, "gotemplate", EngineFactory(NewGoTemplateEngine))
	registry.MustRegister(engines, "pongo2", EngineFactory(NewPongo2Engine))
	registry.MustRegister(engines, "jinja2", EngineFactory(NewPongo2Engine))
}

// LookupEngine returns the factory registered under name
func LookupEngine(name string) (EngineFactory, error) {
	if name == "" {
		name = DefaultEngine
	}
	factory, err := engines.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptArgument, "Unknown template engine: %s", name).
			WithDetail("engine", name).
			WithDetail("available", EngineNames())
	}
	return factory, nil
}

// EngineNames lists the registered engine names, sorted
func EngineNames() []string {
	return engines.List()
}
