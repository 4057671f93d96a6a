package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate configuration files for a role from templates and settings"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	// Version output
	MsgVersionFormat = "configme version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error labels and messages
	MsgErrorLabel        = "Error:"
	MsgUnknownErrorLabel = "Unknown Error:"
	MsgFatalLogger       = "Fatal Error: could not even setup a basic logger."
	MsgNoArguments       = "No script arguments specified"
	MsgRequiredArguments = "the following arguments are required: %s"
	MsgMissingSeparator  = "List element '%s' is missing a separator, either ':' or '='"

	// Flag descriptions
	MsgFlagTemplates = "Templates folder"
	MsgFlagSettings  = "Settings folder"
	MsgFlagOutput    = "Output folder"
	MsgFlagRoleName  = "Role name, also the settings file name without extension"
	MsgFlagSuffix    = "Suffix appended to the role name to form the output folder name"
	MsgFlagVariables = "Role variable as key:value or key=value (repeatable)"
	MsgFlagExtension = "Settings file extension"
	MsgFlagEngine    = "Template engine (gotemplate, pongo2, jinja2)"
	MsgFlagFormat    = "Manifest output format (text, json, yaml, toml)"
	MsgFlagConfig    = "Config file (default $XDG_CONFIG_HOME/configme/config.toml)"
	MsgFlagLogFile   = "Also write JSON logs to this file"
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
