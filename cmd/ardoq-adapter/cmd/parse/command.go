// Package parse provides the parse command, which prints the dependencies
// found in a report without contacting Ardoq.
package parse

import (
	"github.com/spf13/cobra"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/appcontext"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/cmd/cmdutil"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/cmd/output"
)

// NewCommand creates the parse command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *cmdutil.ReportFlags

	cmd := &cobra.Command{
		Use:   "parse <report|->",
		Short: "Print the dependencies found in a report",
		Long: `Parse a Gradle or Maven dependency report and print the distinct
dependencies it declares. Nothing is sent to Ardoq.`,
		Example: `  # Parse a gradle report
  ./gradlew dependencies | ardoq-adapter parse -

  # Parse a maven report as JSON
  ardoq-adapter parse --parser maven -o json tree.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			data, err := cmdutil.ReadReport(cmd, args[0])
			if err != nil {
				return err
			}

			name, deps, err := flags.Parse(data)
			if err != nil {
				return err
			}
			app.Logger().Debug().
				Str("parser", name).
				Int("dependencies", len(deps)).
				Msg("Parsed report")

			return output.NewFormatter(output.DetectFormat(string(format))).
				Format(cmd.OutOrStdout(), output.Dependencies(deps))
		},
	}

	flags = cmdutil.AddReportFlags(cmd)
	return cmd
}
