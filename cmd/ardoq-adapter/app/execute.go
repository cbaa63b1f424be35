package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmcts/dtsse-ardoq-adapter/cmd/ardoq-adapter/cmd/completion"
	"github.com/hmcts/dtsse-ardoq-adapter/cmd/ardoq-adapter/cmd/parse"
	"github.com/hmcts/dtsse-ardoq-adapter/cmd/ardoq-adapter/cmd/reconcile"
	"github.com/hmcts/dtsse-ardoq-adapter/cmd/ardoq-adapter/cmd/serve"
	"github.com/hmcts/dtsse-ardoq-adapter/cmd/ardoq-adapter/cmd/version"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ardoq-adapter",
		Short:   "Mirror Gradle and Maven dependency reports into Ardoq",
		Version: a.version,
		Long: `ardoq-adapter reads the dependency report of a code repository and
reconciles it with Ardoq: one component per dependency in the software
workspace, one per repository in the code repository workspace, and
versioned references between them.

Reports are uploaded to the HTTP server (serve) or reconciled directly
from a file (reconcile).`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "utility",
		Title: "Utility Commands:",
	})

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.ardoq-adapter.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("ardoq-adapter {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// Persistent flags are defined in createRootCommand, so lookups cannot fail
	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)

	if err := a.config.ReadConfigFile(mustGetString(cmd, "config")); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	if a.config.ConfigFile != "" {
		a.logger.Debug().Str("file", a.config.ConfigFile).Msg("Using config file")
	}
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	core := []*cobra.Command{
		serve.NewCommand(a),
		reconcile.NewCommand(a),
	}
	for _, c := range core {
		c.GroupID = "core"
		rootCmd.AddCommand(c)
	}

	utility := []*cobra.Command{
		parse.NewCommand(a),
		version.NewCommand(a),
		completion.NewCommand(),
	}
	for _, c := range utility {
		c.GroupID = "utility"
		rootCmd.AddCommand(c)
	}
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
