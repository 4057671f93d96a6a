package rendering

import (
	"path/filepath"
	"strings"

	"github.com/goodwillcoding/configme/pkg/assets"
	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/goodwillcoding/configme/pkg/logging"
	"github.com/goodwillcoding/configme/pkg/naming"
	"github.com/rs/zerolog"
)

// Environment is what a TemplateRenderer needs from its configurator
type Environment interface {
	Assets() *assets.Manager
	Engine() Engine
	Logger() zerolog.Logger
}

// TemplateRenderer renders one template to one file below a role's output
// folder. The relative path is both the template name and the output name.
type TemplateRenderer struct {
	env              Environment
	roleOutputFolder string
	path             string
	variables        map[string]string
	logger           zerolog.Logger
}

// NewTemplateRenderer validates path and binds a renderer to it
func NewTemplateRenderer(env Environment, roleOutputFolder, path string, variables map[string]string) (*TemplateRenderer, error) {
	if _, err := naming.ValidatePath(path); err != nil {
		return nil, err
	}

	return &TemplateRenderer{
		env:              env,
		roleOutputFolder: roleOutputFolder,
		path:             path,
		variables:        variables,
		logger:           logging.Component(env.Logger(), "rendering").With().Str("path", path).Logger(),
	}, nil
}

// Path returns the relative template/output path
func (r *TemplateRenderer) Path() string {
	return r.path
}

// OutputPath returns where Write puts the rendered file
func (r *TemplateRenderer) OutputPath() string {
	return r.env.Assets().JoinPath(r.roleOutputFolder, r.path)
}

// RenderedContent renders the template with the section's variables
func (r *TemplateRenderer) RenderedContent() (string, error) {
	content, err := r.env.Engine().Render(r.path, r.variables)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender,
			"Failed to render config template: %s: %v", r.path, err).
			WithDetail("path", r.path)
	}
	return content, nil
}

// Write renders the template and writes it to OutputPath, creating parent
// folders. Every folder between the role folder and the file's parent must
// not be a file, and the output path must not be a folder; either case is
// reported as ErrAssetLocationTaken before anything is rendered.
func (r *TemplateRenderer) Write() (string, error) {
	am := r.env.Assets()

	outputPath := r.OutputPath()
	parent := am.ParentDir(outputPath)

	for _, dir := range r.parentChain(parent) {
		if _, err := am.AssertFree(dir); err != nil {
			return "", err
		}
	}

	if _, err := am.CreateDirectory(parent); err != nil {
		return "", err
	}

	if _, err := am.AssertNotDirectory(outputPath); err != nil {
		return "", err
	}

	content, err := r.RenderedContent()
	if err != nil {
		return "", err
	}

	if _, err := am.WriteFile(outputPath, content); err != nil {
		return "", err
	}

	r.logger.Debug().Str("output", outputPath).Msg("rendered config")
	return outputPath, nil
}

// parentChain lists the folders below the role folder leading to parent,
// outermost first. For files directly in the role folder it is just parent.
func (r *TemplateRenderer) parentChain(parent string) []string {
	relDir := filepath.Dir(r.path)
	if relDir == "." {
		return []string{parent}
	}

	parts := strings.Split(filepath.ToSlash(relDir), "/")
	chain := make([]string, 0, len(parts))
	for i := range parts {
		segments := append([]string{r.roleOutputFolder}, parts[:i+1]...)
		chain = append(chain, r.env.Assets().JoinPath(segments...))
	}
	return chain
}
