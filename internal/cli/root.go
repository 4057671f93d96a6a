package cli

import (
	"fmt"
	"strings"

	"github.com/goodwillcoding/configme/internal/version"
	"github.com/goodwillcoding/configme/pkg/config"
	"github.com/goodwillcoding/configme/pkg/configurator"
	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/goodwillcoding/configme/pkg/logging"
	"github.com/goodwillcoding/configme/pkg/output"
	"github.com/goodwillcoding/configme/pkg/rendering"
	"github.com/goodwillcoding/configme/pkg/role"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// flagKeys maps flags to the config keys they override
var flagKeys = []struct {
	flag string
	key  string
}{
	{"templates-path", "paths.templates"},
	{"settings-path", "paths.settings"},
	{"output-path", "paths.output"},
	{"role-name", "role.name"},
	{"role-suffix", "role.suffix"},
	{"settings-extension", "settings.extension"},
	{"engine", "engine"},
	{"format", "output.format"},
	{"log-file", "log.file"},
	{"verbose", "log.verbosity"},
}

// bootstrapError marks failures to build the logger
type bootstrapError struct {
	err error
}

func (e *bootstrapError) Error() string { return e.err.Error() }
func (e *bootstrapError) Unwrap() error { return e.err }

// options holds the raw flag values of one invocation
type options struct {
	templates  string
	settings   string
	output     string
	roleName   string
	roleSuffix string
	variables  []string
	extension  string
	engine     string
	format     string
	configFile string
	logFile    string
	verbosity  int

	// userConfigFile overrides the XDG location; empty disables it
	userConfigFile *string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "configme -t TEMPLATES -s SETTINGS -o OUTPUT -r ROLE [flags] [key=value ...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, opts, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.templates, "templates-path", "t", "", MsgFlagTemplates)
	flags.StringVarP(&opts.settings, "settings-path", "s", "", MsgFlagSettings)
	flags.StringVarP(&opts.output, "output-path", "o", "", MsgFlagOutput)
	flags.StringVarP(&opts.roleName, "role-name", "r", "", MsgFlagRoleName)
	flags.StringVarP(&opts.roleSuffix, "role-suffix", "u", "", MsgFlagSuffix)
	flags.StringArrayVarP(&opts.variables, "role-variables", "b", nil, MsgFlagVariables)
	flags.StringVar(&opts.extension, "settings-extension", configurator.DefaultSettingsFileExtension, MsgFlagExtension)
	flags.StringVar(&opts.engine, "engine", rendering.DefaultEngine, MsgFlagEngine)
	flags.StringVar(&opts.format, "format", output.FormatText, MsgFlagFormat)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&opts.logFile, "log-file", "", MsgFlagLogFile)
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrapf(err, errors.ErrScriptArgument, "%v", err)
	})

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

func generate(cmd *cobra.Command, opts *options, args []string) error {
	loader := config.NewLoader()
	if opts.userConfigFile != nil {
		loader.UserConfigFile = *opts.userConfigFile
	}
	loader.ConfigFile = opts.configFile
	loader.Flags = changedFlags(cmd, opts)

	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Out:       cmd.ErrOrStderr(),
		Verbosity: cfg.Log.Verbosity,
		NoColor:   !output.ColorEnabled(cmd.ErrOrStderr()),
		File:      cfg.Log.File,
	})
	if err != nil {
		return &bootstrapError{err: err}
	}
	logger = logging.Component(logger, "cli")
	logger.Debug().Strs("args", args).Msg("Command started")

	if missing := cfg.Missing(); len(missing) > 0 {
		return errors.Newf(errors.ErrScriptArgument, MsgRequiredArguments, strings.Join(flagNames(missing), ", ")).
			WithDetail("missing", missing)
	}

	variables, err := collectVariables(cfg.Variables, opts.variables, args)
	if err != nil {
		return err
	}

	engine, err := rendering.LookupEngine(cfg.Engine)
	if err != nil {
		return err
	}
	if err := output.ValidateFormat(cfg.Output.Format); err != nil {
		return err
	}

	configMe, err := configurator.New(cfg.Paths.Templates, cfg.Paths.Settings, cfg.Paths.Output,
		configurator.WithEngine(engine),
		configurator.WithSettingsFileExtension(cfg.Settings.Extension),
		configurator.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	r, err := role.New(configMe, cfg.Role.Name, cfg.Role.Suffix, variables)
	if err != nil {
		return err
	}

	manifest, err := r.WriteConfigs()
	if err != nil {
		return err
	}

	return output.Write(cmd.OutOrStdout(), cfg.Output.Format, manifest)
}

// changedFlags returns the flags set on the command line as config keys
func changedFlags(cmd *cobra.Command, opts *options) map[string]interface{} {
	values := map[string]interface{}{
		"templates-path":     opts.templates,
		"settings-path":      opts.settings,
		"output-path":        opts.output,
		"role-name":          opts.roleName,
		"role-suffix":        opts.roleSuffix,
		"settings-extension": opts.extension,
		"engine":             opts.engine,
		"format":             opts.format,
		"log-file":           opts.logFile,
		"verbose":            opts.verbosity,
	}

	changed := make(map[string]interface{})
	for _, fk := range flagKeys {
		if cmd.Flags().Changed(fk.flag) {
			changed[fk.key] = values[fk.flag]
		}
	}
	return changed
}

// flagNames maps config keys back to their long flag names
func flagNames(keys []string) []string {
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		for _, fk := range flagKeys {
			if fk.key == key {
				names = append(names, "--"+fk.flag)
				break
			}
		}
	}
	return names
}

// collectVariables merges config file variables, -b elements and
// positional elements, later sources winning
func collectVariables(base map[string]string, flagged, positional []string) (map[string]string, error) {
	vars := make(map[string]string, len(base))
	for k, v := range base {
		vars[k] = v
	}
	for _, list := range [][]string{flagged, positional} {
		parsed, err := ParseVariables(list)
		if err != nil {
			return nil, err
		}
		for k, v := range parsed {
			vars[k] = v
		}
	}
	return vars, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Args:  scriptArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  scriptArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "man",
		Short: MsgManShort,
		Args:  scriptArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}

// scriptArgs reports positional argument errors as ErrScriptArgument
func scriptArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Wrapf(err, errors.ErrScriptArgument, "%v", err)
		}
		return nil
	}
}

// ManHeader is the header of the generated man page
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "CONFIGME",
		Section: "1",
		Source:  "configme " + version.Version,
		Manual:  "configme manual",
	}
}
