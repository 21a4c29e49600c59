package uievent

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/uievent/internal/version"
	"github.com/arthur-debert/uievent/pkg/cobrax/topics"
	"github.com/arthur-debert/uievent/pkg/config"
	"github.com/arthur-debert/uievent/pkg/logging"
	"github.com/arthur-debert/uievent/pkg/scenario"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// rootOptions holds the global flags and the configuration they select
type rootOptions struct {
	verbosity  int
	noColor    bool
	configPath string

	cfg *config.Config
}

// load reads the configuration for cmd, applying the global flags that
// were set on the command line
func (o *rootOptions) load(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("no-color") {
		overrides["output.no_color"] = o.noColor
	}

	cfg, err := config.Load(config.LoadOptions{Path: o.configPath, Overrides: overrides})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	o.cfg = cfg
	return nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "uievent",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLoggerWithOutput(opts.verbosity, cmd.ErrOrStderr())
			if err := opts.load(cmd); err != nil {
				return err
			}
			if opts.cfg.Logging.Verbosity > opts.verbosity {
				logging.SetupLoggerWithOutput(opts.cfg.Logging.Verbosity, cmd.ErrOrStderr())
			}
			log.Debug().Str("command", cmd.Name()).Str("config", opts.cfg.Source).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	sub, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		_, err = topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// builtinNamesCompletion completes builtin scenario names
func builtinNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	taken := make(map[string]bool, len(args))
	for _, a := range args {
		taken[a] = true
	}
	var names []string
	for _, name := range scenario.BuiltinNames() {
		if !taken[name] {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveDefault
}

func newListCmd() *cobra.Command {
	var ops bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if ops {
				docs := scenario.Operations()
				width := 0
				for _, d := range docs {
					width = max(width, len(d.Name))
				}
				fmt.Fprintln(out, MsgOpsHeader)
				for _, d := range docs {
					fmt.Fprintf(out, MsgListItem, width, d.Name, d.Doc)
				}
				return nil
			}

			scenarios := scenario.Builtins()
			width := 0
			for _, sc := range scenarios {
				width = max(width, len(sc.Name))
			}
			fmt.Fprintln(out, MsgBuiltinHeader)
			for _, sc := range scenarios {
				fmt.Fprintf(out, MsgListItem, width, sc.Name, sc.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ops, "ops", false, MsgFlagOps)
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "show <scenario>",
		Short:             MsgShowShort,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: builtinNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := scenario.LookupBuiltin(args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b.Raw)
			return err
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				fmt.Fprint(out, config.DefaultContent())
				return nil
			}

			data, err := opts.cfg.TOML()
			if err != nil {
				return err
			}
			if opts.cfg.Source != "" {
				fmt.Fprintf(out, MsgConfigSource, opts.cfg.Source)
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Name() == "help" {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf(MsgErrHelpNotFound)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
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
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
