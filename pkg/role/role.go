// Package role generates the configuration files of one role: it wipes the
// role's output folder, reads the role's settings file and renders one
// template per section.
package role

import (
	"path/filepath"
	"sort"

	"github.com/goodwillcoding/configme/pkg/configurator"
	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/goodwillcoding/configme/pkg/logging"
	"github.com/goodwillcoding/configme/pkg/naming"
	"github.com/goodwillcoding/configme/pkg/rendering"
	"github.com/goodwillcoding/configme/pkg/settings"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Role is a named configuration profile bound to a Configurator
type Role struct {
	config    *configurator.Configurator
	name      string
	suffix    string
	variables map[string]string
	logger    zerolog.Logger
}

// New validates name and suffix and binds them to cfg. variables are the
// override variables merged into every section as interpolation defaults.
func New(cfg *configurator.Configurator, name, suffix string, variables map[string]string) (*Role, error) {
	if _, err := naming.ValidateRoleName(name); err != nil {
		return nil, err
	}
	if _, err := naming.ValidateRoleSuffix(suffix); err != nil {
		return nil, err
	}

	vars := make(map[string]string, len(variables))
	for k, v := range variables {
		vars[k] = v
	}

	r := &Role{
		config:    cfg,
		name:      name,
		suffix:    suffix,
		variables: vars,
		logger:    logging.Component(cfg.Logger(), "role").With().Str("role", name+suffix).Logger(),
	}
	if _, err := r.ownedOutputFolder(); err != nil {
		return nil, err
	}
	return r, nil
}

// Name returns the role name
func (r *Role) Name() string { return r.name }

// Suffix returns the role suffix
func (r *Role) Suffix() string { return r.suffix }

// SuffixedName is the role name followed by its suffix
func (r *Role) SuffixedName() string {
	return r.name + r.suffix
}

// OutputFolderPath is the folder this role's files are generated into
func (r *Role) OutputFolderPath() string {
	return r.config.Assets().JoinPath(r.config.OutputRoot(), r.SuffixedName())
}

// SettingsFilePath is the settings file describing this role's sections
func (r *Role) SettingsFilePath() string {
	return r.config.Assets().JoinPath(r.config.SettingsRoot(), r.name+"."+r.config.SettingsFileExtension())
}

// ownedOutputFolder returns OutputFolderPath after checking it is a direct
// child of the output root named after the role. Names such as "." or ".."
// would otherwise point the wipe at the output root or above it.
func (r *Role) ownedOutputFolder() (string, error) {
	folder := r.OutputFolderPath()
	if filepath.Dir(folder) != filepath.Clean(r.config.OutputRoot()) || filepath.Base(folder) != r.SuffixedName() {
		return "", errors.Newf(errors.ErrInvalidName, "Role name cannot be '%s': %s", r.SuffixedName(), r.SuffixedName()).
			WithDetail("name", r.SuffixedName()).
			WithDetail("output", r.config.OutputRoot())
	}
	return folder, nil
}

// WriteConfigs regenerates the role's output folder and returns the written
// files, sorted. Any failure stops the run; files already written stay.
func (r *Role) WriteConfigs() ([]string, error) {
	logger := r.logger.With().Str("run", uuid.NewString()).Logger()
	done := logging.LogOperationStart(logger, "write_configs")
	defer done()

	am := r.config.Assets()
	outputFolder, err := r.ownedOutputFolder()
	if err != nil {
		return nil, err
	}

	if _, err := am.RemoveDirectory(outputFolder); err != nil {
		return nil, err
	}
	if _, err := am.CreateDirectory(outputFolder); err != nil {
		return nil, err
	}

	parser := settings.NewParser(r.config.FS(), logger)
	sections, err := parser.Read(r.SettingsFilePath(), r.variables)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("sections", len(sections)).Str("settings", r.SettingsFilePath()).Msg("settings loaded")

	manifest := make([]string, 0, len(sections))
	for _, section := range sections {
		renderer, err := rendering.NewTemplateRenderer(r.config, outputFolder, section.Name, section.Variables)
		if err != nil {
			return nil, err
		}

		written, err := renderer.Write()
		if err != nil {
			return nil, err
		}
		manifest = append(manifest, written)
	}

	sort.Strings(manifest)

	logger.Info().Int("files", len(manifest)).Str("output", outputFolder).Msg("configs written")
	return manifest, nil
}
