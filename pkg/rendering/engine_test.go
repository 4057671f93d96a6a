package rendering

import (
	"testing"

	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/goodwillcoding/configme/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memTemplates(t *testing.T, files map[string]string) filesystem.FS {
	t.Helper()
	mem := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(mem, "/t/"+name, []byte(content), 0644))
	}
	return filesystem.NewAferoFS(mem)
}

func TestLookupEngine(t *testing.T) {
	for _, name := range []string{"", "gotemplate", "pongo2", "jinja2"} {
		t.Run("known "+name, func(t *testing.T) {
			factory, err := LookupEngine(name)
			require.NoError(t, err)
			assert.NotNil(t, factory)
		})
	}

	_, err := LookupEngine("mustache")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptArgument))
	assert.Equal(t, "Unknown template engine: mustache", err.Error())

	assert.Equal(t, []string{"gotemplate", "jinja2", "pongo2"}, EngineNames())
}

func TestGoTemplateEngine(t *testing.T) {
	fsys := memTemplates(t, map[string]string{
		"etc/app.conf": "port = {{ .port }}\nhost = {{ .host }}\n",
		"missing.conf": "value = {{ .nope }}\n",
		"broken.conf":  "value = {{ .port \n",
		"func.conf":    `{{ if eq .env "prod" }}strict{{ else }}relaxed{{ end }}`,
	})
	engine := NewGoTemplateEngine(fsys, "/t")

	t.Run("renders variables", func(t *testing.T) {
		out, err := engine.Render("etc/app.conf", map[string]string{"port": "8080", "host": "db"})
		require.NoError(t, err)
		assert.Equal(t, "port = 8080\nhost = db\n", out)
	})

	t.Run("conditionals", func(t *testing.T) {
		out, err := engine.Render("func.conf", map[string]string{"env": "prod"})
		require.NoError(t, err)
		assert.Equal(t, "strict", out)
	})

	errorCases := []struct {
		name string
		path string
		want string
	}{
		{"template not found", "nope.conf", "template not found: nope.conf"},
		{"unresolved variable", "missing.conf", `map has no entry for key "nope"`},
		{"syntax error", "broken.conf", "parsing template"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Render(tt.path, map[string]string{"port": "1"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPongo2Engine(t *testing.T) {
	fsys := memTemplates(t, map[string]string{
		"etc/app.conf":        "port = {{ port }}\n{% include \"partials/footer.conf\" %}",
		"partials/footer.conf": "# generated for {{ role|upper }}\n",
		"broken.conf":          "{% if %}\n",
		"undefined.conf":       "value = [{{ nope }}]",
	})
	engine := NewPongo2Engine(fsys, "/t")

	t.Run("renders with includes and filters", func(t *testing.T) {
		out, err := engine.Render("etc/app.conf", map[string]string{"port": "8080", "role": "prod"})
		require.NoError(t, err)
		assert.Equal(t, "port = 8080\n# generated for PROD\n", out)
	})

	t.Run("undefined variables render empty", func(t *testing.T) {
		out, err := engine.Render("undefined.conf", nil)
		require.NoError(t, err)
		assert.Equal(t, "value = []", out)
	})

	t.Run("template not found", func(t *testing.T) {
		_, err := engine.Render("nope.conf", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading template")
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := engine.Render("broken.conf", nil)
		require.Error(t, err)
	})
}
