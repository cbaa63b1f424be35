// Package cmdutil provides the report flags and input handling shared by
// the parse and reconcile commands.
package cmdutil

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/parser"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// Stdin is the argument naming standard input.
const Stdin = "-"

// ReportFlags holds the flags describing a report file.
type ReportFlags struct {
	Parser string
}

// AddReportFlags adds report flags to a command.
func AddReportFlags(cmd *cobra.Command) *ReportFlags {
	flags := &ReportFlags{}

	cmd.Flags().StringVarP(&flags.Parser, "parser", "p", "",
		"Report format: "+strings.Join(parser.Names(), ", ")+" (default: detect)")
	_ = cmd.RegisterFlagCompletionFunc("parser", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return parser.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return flags
}

// ReadReport reads the report named by path, or standard input for "-".
// Reports larger than constants.MaxReportBytes are rejected.
func ReadReport(cmd *cobra.Command, path string) ([]byte, error) {
	var r io.Reader
	if path == Stdin {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WrapResource("open", "report", path, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, constants.MaxReportBytes+1))
	if err != nil {
		return nil, errors.WrapResource("read", "report", path, err)
	}
	if len(data) > constants.MaxReportBytes {
		return nil, errors.NewValidationError("report", path, "report exceeds the maximum size")
	}
	return data, nil
}

// Parse parses data with the configured parser, detecting the format
// when none was given. It returns the parser name used.
func (f *ReportFlags) Parse(data []byte) (string, []ardoq.Dependency, error) {
	name := f.Parser
	if name == "" {
		name = parser.Detect(data)
	}
	deps, err := parser.ParseString(name, string(data))
	if err != nil {
		return name, nil, err
	}
	return name, deps, nil
}
