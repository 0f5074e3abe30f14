package cli

import (
	"github.com/spf13/cobra"
)

// Options are the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// buildRootCmd constructs the command tree wired to the run* actions.
func buildRootCmd() *cobra.Command { return buildRootCmdWith(&Options{}) }

func buildRootCmdWith(opts *Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "lifeline",
		Short:         "Drive an owner and its entity through their lifecycle",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (.yaml|.yml|.json|.toml); defaults to ./lifeline.* or ~/.config/lifeline/lifeline.*")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug|info|warn|error|off (overrides config)")
	root.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "Log format: console|json (overrides config)")

	demoCmd := &cobra.Command{
		Use:     "demo",
		Short:   "Prepare an owner, release it and report how the entity stopped",
		Example: "  lifeline demo --log-level debug",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(opts, cmd)
			if err != nil {
				return err
			}
			return runDemo(env)
		},
	}

	stopTwiceCmd := &cobra.Command{
		Use:   "stop-twice",
		Short: "Stop a running entity twice and show that only one transition happened",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(opts, cmd)
			if err != nil {
				return err
			}
			return runStopTwice(env)
		},
	}

	var asJSON, prepare bool
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Build an owner from config and print its status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(opts, cmd)
			if err != nil {
				return err
			}
			return runStatus(env, prepare, asJSON)
		},
	}
	statusCmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")
	statusCmd.Flags().BoolVar(&prepare, "prepare", false, "Start the entity before reporting")

	root.AddCommand(demoCmd, stopTwiceCmd, statusCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout()) }})
	root.AddCommand(completionCmd)

	return root
}

// Main runs the CLI with os.Args and returns the process exit code.
func Main() int {
	root := buildRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("error:", err)
		return 1
	}
	return 0
}
