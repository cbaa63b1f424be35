// Package version provides the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/appcontext"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/cmd/output"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"builtBy" yaml:"built_by"`
	GoVersion string `json:"goVersion" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// TableData implements output.Tabular.
func (i Info) TableData() output.Data {
	return output.Data{
		Headers: []string{"field", "value"},
		Rows: [][]string{
			{"version", i.Version},
			{"commit", i.Commit},
			{"built", i.Date},
			{"built by", i.BuiltBy},
			{"go version", i.GoVersion},
			{"platform", i.Platform},
		},
	}
}

// NewCommand creates the version command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version:   app.Version(),
				Commit:    app.Commit(),
				Date:      app.Date(),
				BuiltBy:   app.BuiltBy(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			if app.OutputFormat() == "" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "ardoq-adapter version %s\ncommit: %s\nbuilt: %s\nbuilt by: %s\ngo version: %s\nplatform: %s\n",
					info.Version, info.Commit, info.Date, info.BuiltBy, info.GoVersion, info.Platform)
				return err
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), info)
		},
	}
}
