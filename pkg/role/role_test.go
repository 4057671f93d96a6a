package role

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/goodwillcoding/configme/pkg/configurator"
	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/goodwillcoding/configme/pkg/filesystem"
	"github.com/goodwillcoding/configme/pkg/rendering"
	"github.com/goodwillcoding/configme/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	templates string
	settings  string
	output    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	base := t.TempDir()
	f := fixture{
		templates: filepath.Join(base, "t"),
		settings:  filepath.Join(base, "s"),
		output:    filepath.Join(base, "o"),
	}
	for _, dir := range []string{f.templates, f.settings, f.output} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	return f
}

func (f fixture) template(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(f.templates, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func (f fixture) settingsFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.settings, name), []byte(content), 0644))
}

func (f fixture) configurator(t *testing.T, opts ...configurator.Option) *configurator.Configurator {
	t.Helper()
	c, err := configurator.New(f.templates, f.settings, f.output, opts...)
	require.NoError(t, err)
	return c
}

// MockEngine is a mock implementation of rendering.Engine
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Render(path string, variables map[string]string) (string, error) {
	args := m.Called(path, variables)
	return args.String(0), args.Error(1)
}

func TestNewValidatesNames(t *testing.T) {
	f := newFixture(t)
	cfg := f.configurator(t)

	tests := []struct {
		name    string
		role    string
		suffix  string
		wantErr string
	}{
		{"plain", "production", "", ""},
		{"with suffix", "test_role", "+v2", ""},
		{"leading space", " prod", "", "Role name cannot start with ' ':  prod"},
		{"slash", "prod/web", "", "Role name cannot contain '/': prod/web"},
		{"colon", "a:b", "", "Role name cannot contain ':': a:b"},
		{"first offending char wins", "a?b*c", "", "Role name cannot contain '?': a?b*c"},
		{"bad suffix", "prod", "|x", "Role name cannot contain '|': |x"},
		{"empty", "", "", "Role name cannot be empty"},
		{"parent folder", "..", "", "Role name cannot be '..': .."},
		{"output root", ".", "", "Role name cannot be '.': ."},
		{"suffix completes parent folder", ".", ".", "Role name cannot be '..': .."},
		{"dots inside a name", "a..b", ".", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(cfg, tt.role, tt.suffix, nil)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.role, r.Name())
				assert.Equal(t, tt.suffix, r.Suffix())
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidName))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestOutputFolderStaysInsideOutputRoot(t *testing.T) {
	f := newFixture(t)
	f.template(t, "app.conf", "x")
	f.settingsFile(t, "production.settings", "[app.conf]\n")

	neighbour := filepath.Join(filepath.Dir(f.output), "keep.txt")
	require.NoError(t, os.WriteFile(neighbour, []byte("keep"), 0644))

	cfg := f.configurator(t)
	other, err := New(cfg, "production", "", nil)
	require.NoError(t, err)
	otherFiles, err := other.WriteConfigs()
	require.NoError(t, err)

	for _, tc := range []struct{ name, suffix string }{{"..", ""}, {".", ""}, {".", "."}} {
		r, err := New(cfg, tc.name, tc.suffix, nil)
		require.Error(t, err)
		assert.Nil(t, r)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidName))
	}

	assert.FileExists(t, neighbour)
	assert.DirExists(t, f.templates)
	assert.DirExists(t, f.settings)
	assert.FileExists(t, otherFiles[0])
}

func TestComputedPaths(t *testing.T) {
	f := newFixture(t)
	cfg := f.configurator(t, configurator.WithSettingsFileExtension("ini"))

	r, err := New(cfg, "test_role", "+v2", nil)
	require.NoError(t, err)

	assert.Equal(t, "test_role+v2", r.SuffixedName())
	assert.Equal(t, filepath.Join(f.output, "test_role+v2"), r.OutputFolderPath())
	assert.Equal(t, filepath.Join(f.settings, "test_role.ini"), r.SettingsFilePath())
}

func TestWriteConfigsEndToEnd(t *testing.T) {
	f := newFixture(t)
	f.template(t, "etc/app.conf", "port = {{ .port }}\n")
	f.settingsFile(t, "role1.settings", "[etc/app.conf]\nport = %(port)s\n")

	r, err := New(f.configurator(t), "role1", "", map[string]string{"port": "8080"})
	require.NoError(t, err)

	manifest, err := r.WriteConfigs()
	require.NoError(t, err)

	want := filepath.Join(f.output, "role1", "etc", "app.conf")
	assert.Equal(t, []string{want}, manifest)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "port = 8080\n", string(data))
}

func TestWriteConfigsManifestSortedWithSuffix(t *testing.T) {
	f := newFixture(t)
	f.template(t, "z.conf", "z")
	f.template(t, "b/x.conf", "x")
	f.template(t, "a.conf", "a")
	f.settingsFile(t, "test_role.settings", "[DEFAULT]\nowner = ops\n\n[z.conf]\n[b/x.conf]\n[a.conf]\n")

	r, err := New(f.configurator(t), "test_role", "+v2", nil)
	require.NoError(t, err)

	manifest, err := r.WriteConfigs()
	require.NoError(t, err)
	require.Len(t, manifest, 3)

	prefix := filepath.Join(f.output, "test_role+v2") + string(filepath.Separator)
	assert.Equal(t, []string{prefix + "a.conf", prefix + filepath.Join("b", "x.conf"), prefix + "z.conf"}, manifest)
	for _, p := range manifest {
		assert.True(t, strings.HasPrefix(p, prefix))
	}
}

func TestWriteConfigsEmptySettings(t *testing.T) {
	f := newFixture(t)
	f.settingsFile(t, "empty.settings", "[DEFAULT]\nkey = value\n")

	r, err := New(f.configurator(t), "empty", "", nil)
	require.NoError(t, err)

	manifest, err := r.WriteConfigs()
	require.NoError(t, err)
	assert.Empty(t, manifest)
	assert.DirExists(t, r.OutputFolderPath())
}

func TestWriteConfigsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.template(t, "app.conf", "name = {{ .name }}\n")
	f.settingsFile(t, "web.settings", "[app.conf]\nname = web\n")

	r, err := New(f.configurator(t), "web", "", nil)
	require.NoError(t, err)

	first, err := r.WriteConfigs()
	require.NoError(t, err)
	firstContent, err := os.ReadFile(first[0])
	require.NoError(t, err)

	// stale files from a previous run are removed
	stale := filepath.Join(r.OutputFolderPath(), "stale.conf")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	second, err := r.WriteConfigs()
	require.NoError(t, err)
	secondContent, err := os.ReadFile(second[0])
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstContent, secondContent)
	assert.NoFileExists(t, stale)
}

func TestWriteConfigsInterpolationError(t *testing.T) {
	f := newFixture(t)
	f.template(t, "app.conf", "x")
	f.settingsFile(t, "role1.settings", "[app.conf]\nport = %(port)s\n")

	r, err := New(f.configurator(t), "role1", "", nil)
	require.NoError(t, err)

	_, err = r.WriteConfigs()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsParsing))
	assert.Contains(t, err.Error(), "Bad variable interpolation for file: "+r.SettingsFilePath())
}

func TestWriteConfigsMissingSettingsFile(t *testing.T) {
	f := newFixture(t)

	r, err := New(f.configurator(t), "ghost", "", nil)
	require.NoError(t, err)

	_, err = r.WriteConfigs()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsParsing))
	assert.Equal(t, "Could not load file: "+r.SettingsFilePath(), err.Error())
}

func TestWriteConfigsCollision(t *testing.T) {
	for _, order := range [][]string{{"a", "a/b"}, {"a/b", "a"}} {
		t.Run(strings.Join(order, " then "), func(t *testing.T) {
			f := newFixture(t)
			f.settingsFile(t, "clash.settings", "["+order[0]+"]\n["+order[1]+"]\n")

			engine := &MockEngine{}
			engine.On("Render", mock.Anything, mock.Anything).Return("content", nil)
			factory := func(filesystem.FS, string) rendering.Engine { return engine }

			r, err := New(f.configurator(t, configurator.WithEngine(factory)), "clash", "", nil)
			require.NoError(t, err)

			_, err = r.WriteConfigs()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrAssetLocationTaken))
			assert.Contains(t, err.Error(), "Asset or Location already exist: "+filepath.Join(r.OutputFolderPath(), "a"))
		})
	}
}

func TestWriteConfigsInvalidSectionPath(t *testing.T) {
	f := newFixture(t)
	f.settingsFile(t, "bad.settings", "[../escape.conf]\nk = v\n")

	r, err := New(f.configurator(t), "bad", "", nil)
	require.NoError(t, err)

	_, err = r.WriteConfigs()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidName))
	assert.Equal(t, "Path cannot start with '../': ../escape.conf", err.Error())
}

func TestWriteConfigsStopsAtFirstRenderFailure(t *testing.T) {
	f := newFixture(t)
	f.settingsFile(t, "partial.settings", "[one.conf]\n[two.conf]\n[three.conf]\n")

	engine := &MockEngine{}
	engine.On("Render", "one.conf", mock.Anything).Return("1", nil)
	engine.On("Render", "two.conf", mock.Anything).Return("", assert.AnError)
	factory := func(filesystem.FS, string) rendering.Engine { return engine }

	r, err := New(f.configurator(t, configurator.WithEngine(factory)), "partial", "", nil)
	require.NoError(t, err)

	_, err = r.WriteConfigs()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))

	assert.FileExists(t, filepath.Join(r.OutputFolderPath(), "one.conf"))
	assert.NoFileExists(t, filepath.Join(r.OutputFolderPath(), "three.conf"))
	engine.AssertNotCalled(t, "Render", "three.conf", mock.Anything)
}

func TestWriteConfigsInMemory(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddTemplate("etc/app.conf", "{{ .greeting }}, {{ .who }}").
		AddSettings("mem", "[DEFAULT]\nwho = world\n[etc/app.conf]\ngreeting = %(salutation)s\n")

	r, err := New(env.Configurator(), "mem", "", map[string]string{"Salutation": "hello"})
	require.NoError(t, err)

	manifest, err := r.WriteConfigs()
	require.NoError(t, err)
	assert.Equal(t, []string{env.OutputPath("mem", "etc", "app.conf")}, manifest)
	assert.Equal(t, "hello, world", env.ReadOutput("mem", "etc", "app.conf"))
}

func TestWriteConfigsFilesystemFailures(t *testing.T) {
	tests := []struct {
		name string
		op   testutil.Op
		path []string
		code errors.ErrorCode
		want string
	}{
		{"output folder removal", testutil.OpRemoveAll, []string{"web"}, errors.ErrLocationRemoval, "[Errno 13] permission denied: '%s'"},
		{"output folder creation", testutil.OpMkdirAll, []string{"web"}, errors.ErrLocationCreation, "[Errno 28] no space left on device: '%s'"},
		{"file write", testutil.OpWriteFile, []string{"web", "app.conf"}, errors.ErrAssetCreation, "[Errno 30] read-only file system: '%s'"},
	}
	errnos := map[testutil.Op]syscall.Errno{
		testutil.OpRemoveAll: syscall.EACCES,
		testutil.OpMkdirAll:  syscall.ENOSPC,
		testutil.OpWriteFile: syscall.EROFS,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
			env.AddTemplate("app.conf", "x").AddSettings("web", "[app.conf]\n")

			// removal is only attempted when the folder exists
			require.NoError(t, env.FS.MkdirAll(env.OutputPath("web"), 0755))

			target := env.OutputPath(tt.path...)
			faulty := testutil.NewFaultyFS(env.FS).FailOn(tt.op, target, errnos[tt.op])

			r, err := New(env.Configurator(configurator.WithFS(faulty)), "web", "", nil)
			require.NoError(t, err)

			_, err = r.WriteConfigs()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code))
			assert.Equal(t, fmt.Sprintf(tt.want, target), err.Error())
			assert.Equal(t, target, errors.GetErrorDetails(err)["path"])
		})
	}
}

func TestWriteConfigsPongo2(t *testing.T) {
	f := newFixture(t)
	f.template(t, "nginx.conf", "listen {{ port }};{% if tls == \"on\" %} ssl{% endif %}\n")
	f.settingsFile(t, "edge.settings", "[nginx.conf]\nport = 443\ntls = on\n")

	r, err := New(f.configurator(t, configurator.WithEngine(rendering.NewPongo2Engine)), "edge", "", nil)
	require.NoError(t, err)

	manifest, err := r.WriteConfigs()
	require.NoError(t, err)
	require.Len(t, manifest, 1)

	data, err := os.ReadFile(manifest[0])
	require.NoError(t, err)
	assert.Equal(t, "listen 443; ssl\n", string(data))
}
