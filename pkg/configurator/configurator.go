// Package configurator holds the three root locations a generation run works
// against and the collaborators shared by every role rendered from them.
package configurator

import (
	"github.com/goodwillcoding/configme/pkg/assets"
	"github.com/goodwillcoding/configme/pkg/filesystem"
	"github.com/goodwillcoding/configme/pkg/logging"
	"github.com/goodwillcoding/configme/pkg/rendering"
	"github.com/rs/zerolog"
)

// DefaultSettingsFileExtension is appended to a role name to find its
// settings file
const DefaultSettingsFileExtension = "settings"

// Configurator validates and holds the templates, settings and output roots.
type Configurator struct {
	templatesRoot string
	settingsRoot  string
	outputRoot    string

	settingsFileExtension string

	fs            filesystem.FS
	logger        zerolog.Logger
	assets        *assets.Manager
	engineFactory rendering.EngineFactory
	engine        rendering.Engine
}

// Option configures a Configurator
type Option func(*Configurator)

// WithSettingsFileExtension overrides the settings file extension
func WithSettingsFileExtension(ext string) Option {
	return func(c *Configurator) {
		if ext != "" {
			c.settingsFileExtension = ext
		}
	}
}

// WithEngine selects the template engine
func WithEngine(factory rendering.EngineFactory) Option {
	return func(c *Configurator) {
		if factory != nil {
			c.engineFactory = factory
		}
	}
}

// WithFS makes every collaborator read and write through fsys
func WithFS(fsys filesystem.FS) Option {
	return func(c *Configurator) {
		if fsys != nil {
			c.fs = fsys
		}
	}
}

// WithLogger sets the logger handed down to roles and renderers
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Configurator) {
		c.logger = logger
	}
}

// New validates the three roots and returns a Configurator bound to them.
// Each root must be an existing directory; otherwise ErrLocationNotFound is
// returned naming the offending root.
func New(templatesRoot, settingsRoot, outputRoot string, opts ...Option) (*Configurator, error) {
	c := &Configurator{
		settingsFileExtension: DefaultSettingsFileExtension,
		fs:                    filesystem.NewOS(),
		logger:                zerolog.Nop(),
		engineFactory:         rendering.NewGoTemplateEngine,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.assets = assets.NewManager(c.fs, c.logger)

	if err := c.SetTemplatesRoot(templatesRoot); err != nil {
		return nil, err
	}
	if err := c.SetSettingsRoot(settingsRoot); err != nil {
		return nil, err
	}
	if err := c.SetOutputRoot(outputRoot); err != nil {
		return nil, err
	}

	log := logging.Component(c.logger, "configurator")
	log.Debug().
		Str("templates", c.templatesRoot).
		Str("settings", c.settingsRoot).
		Str("output", c.outputRoot).
		Msg("roots validated")

	return c, nil
}

// TemplatesRoot returns the validated templates root
func (c *Configurator) TemplatesRoot() string { return c.templatesRoot }

// SettingsRoot returns the validated settings root
func (c *Configurator) SettingsRoot() string { return c.settingsRoot }

// OutputRoot returns the validated output root
func (c *Configurator) OutputRoot() string { return c.outputRoot }

// SettingsFileExtension returns the extension used for role settings files
func (c *Configurator) SettingsFileExtension() string { return c.settingsFileExtension }

// SetTemplatesRoot validates and rebinds the templates root. The engine is
// rebuilt lazily against the new root.
func (c *Configurator) SetTemplatesRoot(path string) error {
	validated, err := c.assets.ValidateDirectory(path, "template")
	if err != nil {
		return err
	}
	c.templatesRoot = validated
	c.engine = nil
	return nil
}

// SetSettingsRoot validates and rebinds the settings root
func (c *Configurator) SetSettingsRoot(path string) error {
	validated, err := c.assets.ValidateDirectory(path, "settings")
	if err != nil {
		return err
	}
	c.settingsRoot = validated
	return nil
}

// SetOutputRoot validates and rebinds the output root
func (c *Configurator) SetOutputRoot(path string) error {
	validated, err := c.assets.ValidateDirectory(path, "output")
	if err != nil {
		return err
	}
	c.outputRoot = validated
	return nil
}

// FS returns the filesystem every collaborator works through
func (c *Configurator) FS() filesystem.FS { return c.fs }

// Assets implements rendering.Environment
func (c *Configurator) Assets() *assets.Manager { return c.assets }

// Logger implements rendering.Environment
func (c *Configurator) Logger() zerolog.Logger { return c.logger }

// Engine implements rendering.Environment
func (c *Configurator) Engine() rendering.Engine {
	if c.engine == nil {
		c.engine = c.engineFactory(c.fs, c.templatesRoot)
	}
	return c.engine
}
