package config

// Config is the merged configuration for one configme invocation
type Config struct {
	Paths     Paths             `koanf:"paths"`
	Role      Role              `koanf:"role"`
	Settings  Settings          `koanf:"settings"`
	Engine    string            `koanf:"engine"`
	Output    Output            `koanf:"output"`
	Log       Log               `koanf:"log"`
	Variables map[string]string `koanf:"variables"`
}

// Paths holds the three root locations
type Paths struct {
	Templates string `koanf:"templates"`
	Settings  string `koanf:"settings"`
	Output    string `koanf:"output"`
}

// Role selects the role to generate
type Role struct {
	Name   string `koanf:"name"`
	Suffix string `koanf:"suffix"`
}

// Settings controls how settings files are found
type Settings struct {
	Extension string `koanf:"extension"`
}

// Output controls how the manifest is printed
type Output struct {
	Format string `koanf:"format"`
}

// Log controls logger construction
type Log struct {
	Verbosity int    `koanf:"verbosity"`
	File      string `koanf:"file"`
}

// Defaults returns the built-in configuration as a flat koanf map
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"settings.extension": "settings",
		"engine":             "gotemplate",
		"output.format":      "text",
		"log.verbosity":      0,
	}
}

// Missing returns the keys of required values that are still empty
func (c *Config) Missing() []string {
	var missing []string
	required := []struct {
		key   string
		value string
	}{
		{"paths.templates", c.Paths.Templates},
		{"paths.settings", c.Paths.Settings},
		{"paths.output", c.Paths.Output},
		{"role.name", c.Role.Name},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	return missing
}
