package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the config
const EnvPrefix = "CONFIGME_"

// AppDirName is the folder under the XDG config home holding config.toml
const AppDirName = "configme"

// Loader merges configuration layers, lowest precedence first:
// built-in defaults, the user config file, an explicit config file,
// CONFIGME_* environment variables and explicitly set flags.
type Loader struct {
	// UserConfigFile is loaded when it exists. Empty disables the layer.
	UserConfigFile string

	// ConfigFile is loaded unconditionally; a missing file is an error
	ConfigFile string

	// Flags are flat koanf keys ("paths.templates") set on the command line
	Flags map[string]interface{}
}

// DefaultUserConfigFile returns $XDG_CONFIG_HOME/configme/config.toml
func DefaultUserConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, "config.toml")
}

// NewLoader returns a Loader reading the XDG user config file
func NewLoader() *Loader {
	return &Loader{UserConfigFile: DefaultUserConfigFile()}
}

// Load merges every layer and unmarshals the result
func (l *Loader) Load() (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "Could not load defaults: %v", err)
	}

	// 2. User config, if it exists
	if l.UserConfigFile != "" {
		if _, err := os.Stat(l.UserConfigFile); err == nil {
			if err := loadFile(k, l.UserConfigFile); err != nil {
				return nil, err
			}
		}
	}

	// 3. Explicit config file
	if l.ConfigFile != "" {
		if err := loadFile(k, l.ConfigFile); err != nil {
			return nil, err
		}
	}

	// 4. Environment
	if err := k.Load(envProvider(), nil); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "Could not load environment: %v", err)
	}

	// 5. Flags
	if len(l.Flags) > 0 {
		if err := k.Load(confmap.Provider(l.Flags, "."), nil); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "Could not load flags: %v", err)
		}
	}

	// Variable names may contain the key delimiter ("db.host"), so the
	// table is flattened on its own instead of decoded as nested maps.
	variables := k.Cut("variables").All()
	k.Delete("variables")

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "Could not read configuration: %v", err)
	}

	if len(variables) > 0 {
		cfg.Variables = make(map[string]string, len(variables))
		for key, value := range variables {
			cfg.Variables[key] = fmt.Sprint(value)
		}
	}

	return &cfg, nil
}

// parserFor picks the koanf parser from the file extension; TOML is the
// default
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "Could not load config file: %s: %v", path, err).
			WithDetail("path", path)
	}
	return nil
}

// envProvider maps CONFIGME_PATHS_TEMPLATES to paths.templates
func envProvider() koanf.Provider {
	return env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	})
}
