package settings

import (
	"sort"
	"strings"

	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/goodwillcoding/configme/pkg/filesystem"
	"github.com/goodwillcoding/configme/pkg/logging"
	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

// Section is one output file described by a settings file: its relative
// path and the fully interpolated variables for its template.
type Section struct {
	Name      string
	Variables map[string]string
}

// Parser reads settings files
type Parser struct {
	fs     filesystem.FS
	logger zerolog.Logger
}

// NewParser creates a Parser reading through fsys
func NewParser(fsys filesystem.FS, logger zerolog.Logger) *Parser {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &Parser{
		fs:     fsys,
		logger: logging.Component(logger, "settings"),
	}
}

var loadOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	AllowPythonMultilineValues: true,
	SpaceBeforeInlineComment:   true,
	PreserveSurroundedQuote:    true,
}

// Read parses the settings file at resourcePath and returns one Section per
// non-DEFAULT section, in file order. overrides act as the lowest
// precedence defaults for every section.
//
// Any failure aborts the whole read; no partial result is returned.
func (p *Parser) Read(resourcePath string, overrides map[string]string) ([]Section, error) {
	data, err := p.fs.ReadFile(resourcePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsParsing, "Could not load file: %s", resourcePath).
			WithDetail("path", resourcePath)
	}

	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsParsing, "Could not parse file: %s: %v", resourcePath, err).
			WithDetail("path", resourcePath)
	}

	defaults := make(map[string]string, len(overrides))
	for k, v := range overrides {
		defaults[strings.ToLower(k)] = v
	}
	for _, key := range file.Section(ini.DefaultSection).Keys() {
		defaults[key.Name()] = key.Value()
	}

	var result []Section
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}

		raw := make(map[string]string, len(defaults)+len(section.Keys()))
		for k, v := range defaults {
			raw[k] = v
		}
		for _, key := range section.Keys() {
			raw[key.Name()] = key.Value()
		}

		vars, err := interpolateAll(section.Name(), scope{vars: raw, defaults: defaults})
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSettingsParsing,
				"Bad variable interpolation for file: %s: %v", resourcePath, err).
				WithDetail("path", resourcePath).
				WithDetail("section", section.Name())
		}

		result = append(result, Section{Name: section.Name(), Variables: vars})
	}

	p.logger.Debug().
		Str("path", resourcePath).
		Int("sections", len(result)).
		Int("overrides", len(overrides)).
		Msg("parsed settings file")

	return result, nil
}

// interpolateAll expands every value of sc.vars. Options are visited in
// sorted order so the reported failure is stable.
func interpolateAll(section string, sc scope) (map[string]string, error) {
	options := make([]string, 0, len(sc.vars))
	for k := range sc.vars {
		options = append(options, k)
	}
	sort.Strings(options)

	vars := make(map[string]string, len(sc.vars))
	for _, option := range options {
		v, err := interpolate(section, option, sc.vars[option], sc)
		if err != nil {
			return nil, err
		}
		vars[option] = v
	}
	return vars, nil
}
