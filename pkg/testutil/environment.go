package testutil

import (
	"path/filepath"
	"testing"

	"github.com/goodwillcoding/configme/pkg/configurator"
	"github.com/goodwillcoding/configme/pkg/filesystem"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a configme project with three existing roots
type TestEnvironment struct {
	TemplatesRoot string
	SettingsRoot  string
	OutputRoot    string

	FS   filesystem.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates the three roots on the requested filesystem
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	var base string
	switch envType {
	case EnvMemoryOnly:
		base = "/virtual"
		env.FS = filesystem.NewAferoFS(afero.NewMemMapFs())
	default:
		base = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	env.TemplatesRoot = filepath.Join(base, "templates")
	env.SettingsRoot = filepath.Join(base, "settings")
	env.OutputRoot = filepath.Join(base, "output")

	for _, dir := range []string{env.TemplatesRoot, env.SettingsRoot, env.OutputRoot} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	return env
}

// AddTemplate writes a template below the templates root
func (env *TestEnvironment) AddTemplate(path, content string) *TestEnvironment {
	env.t.Helper()
	env.writeFile(filepath.Join(env.TemplatesRoot, path), content)
	return env
}

// AddSettings writes <role>.settings below the settings root
func (env *TestEnvironment) AddSettings(role, content string) *TestEnvironment {
	env.t.Helper()
	env.writeFile(filepath.Join(env.SettingsRoot, role+"."+configurator.DefaultSettingsFileExtension), content)
	return env
}

// OutputPath joins parts below the output root
func (env *TestEnvironment) OutputPath(parts ...string) string {
	return filepath.Join(append([]string{env.OutputRoot}, parts...)...)
}

// ReadOutput returns the content of a generated file
func (env *TestEnvironment) ReadOutput(parts ...string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(env.OutputPath(parts...))
	if err != nil {
		env.t.Fatalf("Failed to read output %v: %v", parts, err)
	}
	return string(data)
}

// Configurator binds a Configurator to the environment's roots and FS.
// opts are applied after WithFS so a test may swap the filesystem.
func (env *TestEnvironment) Configurator(opts ...configurator.Option) *configurator.Configurator {
	env.t.Helper()
	all := append([]configurator.Option{configurator.WithFS(env.FS)}, opts...)
	c, err := configurator.New(env.TemplatesRoot, env.SettingsRoot, env.OutputRoot, all...)
	if err != nil {
		env.t.Fatalf("Failed to create configurator: %v", err)
	}
	return c
}

func (env *TestEnvironment) writeFile(path, content string) {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
