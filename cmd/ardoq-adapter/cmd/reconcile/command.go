// Package reconcile provides the reconcile command, which mirrors one
// dependency report into Ardoq from the command line.
package reconcile

import (
	"fmt"

	"github.com/spf13/cobra"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/appcontext"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/cmd/cmdutil"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/cmd/output"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

// Flags holds the reconcile flags.
type Flags struct {
	Report  *cmdutil.ReportFlags
	Repo    string
	VCSHost string
	Batch   bool
	DryRun  bool
}

// NewCommand creates the reconcile command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "reconcile <report|->",
		Aliases: []string{"sync"},
		Short:   "Mirror a dependency report into Ardoq",
		Long: `Reconcile a Gradle or Maven dependency report with Ardoq.

Every dependency gets a component in the software workspace, the
repository gets a component in the code repository workspace, and a
versioned reference links the repository to each dependency. Existing
components are reused and references are only updated when the version
changed.

Use --dry-run to parse the report without contacting Ardoq.`,
		Example: `  # Reconcile a gradle report produced in CI
  ./gradlew dependencies | ardoq-adapter reconcile --repo my-service -

  # Submit all writes as one batch
  ardoq-adapter reconcile --repo my-service --batch report.txt

  # Check what would be sent
  ardoq-adapter reconcile --repo my-service --dry-run report.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], app, flags)
		},
	}

	flags.Report = cmdutil.AddReportFlags(cmd)
	cmd.Flags().StringVarP(&flags.Repo, "repo", "r", "", "Code repository the report belongs to")
	cmd.Flags().StringVar(&flags.VCSHost, "vcs-host", "", "VCS host of the repository (default from ardoq.vcs_host)")
	cmd.Flags().BoolVar(&flags.Batch, "batch", false, "Submit writes through the batch endpoint")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Parse the report without contacting Ardoq")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func run(cmd *cobra.Command, path string, app appcontext.Interface, flags *Flags) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	formatter := output.NewFormatter(output.DetectFormat(string(format)))

	data, err := cmdutil.ReadReport(cmd, path)
	if err != nil {
		return err
	}
	name, deps, err := flags.Report.Parse(data)
	if err != nil {
		return err
	}

	logger := app.Logger().With().
		Str("repository", flags.Repo).
		Str("parser", name).
		Logger()
	logger.Info().Int("dependencies", len(deps)).Msg("Parsed report")

	if flags.DryRun {
		logger.Info().Msg("Dry run, skipping Ardoq")
		return formatter.Format(cmd.OutOrStdout(), output.Dependencies(deps))
	}

	var opts []adapter.Option
	if cmd.Flags().Changed("batch") {
		opts = append(opts, adapter.WithBatch(flags.Batch))
	}
	a, err := app.AdapterWithOptions(opts...)
	if err != nil {
		return err
	}

	ctx := logging.WithLogger(cmd.Context(), &logger)
	summary, err := a.Process(ctx, adapter.Report{
		Repository:   flags.Repo,
		VCSHost:      flags.VCSHost,
		Parser:       name,
		Dependencies: deps,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(cmd.OutOrStdout(), output.Summary(summary)); err != nil {
		return err
	}
	if n := len(summary.Errors); n > 0 {
		return fmt.Errorf("reconciling %s: %d errors", flags.Repo, n)
	}
	return nil
}
