package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/goodwillcoding/configme/pkg/registry"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported manifest formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Manifest is the structured form used by the json, yaml and toml formats
type Manifest struct {
	Files []string `json:"files" yaml:"files" toml:"files"`
}

type encoder func(io.Writer, []string) error

var encoders = registry.New[encoder]()

func init() {
	registry.MustRegister(encoders, FormatText, encoder(writeText))
	registry.MustRegister(encoders, FormatJSON, encoder(writeJSON))
	registry.MustRegister(encoders, FormatYAML, encoder(writeYAML))
	registry.MustRegister(encoders, FormatTOML, encoder(writeTOML))
}

// Formats lists the supported manifest formats, sorted
func Formats() []string {
	return encoders.List()
}

// ValidateFormat fails with ErrScriptArgument for unknown formats
func ValidateFormat(format string) error {
	if !encoders.Has(format) {
		return errors.Newf(errors.ErrScriptArgument, "Unknown output format: %s", format).
			WithDetail("format", format).
			WithDetail("available", Formats())
	}
	return nil
}

// Write prints files to w in the given format
func Write(w io.Writer, format string, files []string) error {
	encode, err := encoders.Get(format)
	if err != nil {
		return ValidateFormat(format)
	}
	if files == nil {
		files = []string{}
	}
	return encode(w, files)
}

func writeText(w io.Writer, files []string) error {
	for _, f := range files {
		if _, err := fmt.Fprintln(w, f); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, files []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Manifest{Files: files})
}

func writeYAML(w io.Writer, files []string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Manifest{Files: files}); err != nil {
		return err
	}
	return enc.Close()
}

func writeTOML(w io.Writer, files []string) error {
	return toml.NewEncoder(w).Encode(Manifest{Files: files})
}
