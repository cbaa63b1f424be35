// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is an output format name.
type Format string

const (
	// FormatTable renders a table.
	FormatTable Format = "table"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
)

// Formatter writes data to w.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements Formatter.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// Tabular is implemented by values with a table rendering.
type Tabular interface {
	TableData() Data
}

// NewFormatter returns the formatter for format; unknown formats render tables.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	if t, ok := data.(Tabular); ok {
		data = unwrap(t)
	}
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	if t, ok := data.(Tabular); ok {
		data = unwrap(t)
	}
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// unwrap returns the value a table view was built from, when it exposes one.
func unwrap(t Tabular) any {
	if v, ok := t.(interface{ Value() any }); ok {
		return v.Value()
	}
	return t
}

// TableFormatter outputs tables. Values without a table rendering fall back to JSON.
type TableFormatter struct{}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return f.formatTable(w, v)
	case Tabular:
		return f.formatTable(w, v.TableData())
	default:
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}
}

func (f *TableFormatter) formatTable(w io.Writer, data Data) error {
	config := tablewriter.Config{}
	if len(data.Alignment) > 0 {
		align := make([]tw.Align, len(data.Alignment))
		for i, a := range data.Alignment {
			switch a {
			case AlignLeft:
				align[i] = tw.AlignLeft
			case AlignCenter:
				align[i] = tw.AlignCenter
			case AlignRight:
				align[i] = tw.AlignRight
			default:
				align[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = HeaderCase(h)
		}
		table.Header(headers...)
	}

	for _, row := range data.Rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}

	return table.Render()
}

// Align is a column alignment.
type Align int

// Column alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Data is a table: headers, rows and optional per-column alignment.
type Data struct {
	Headers   []string
	Rows      [][]string
	Alignment []Align
}

// HeaderCase turns a snake_case key into a title-cased header.
func HeaderCase(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// DetectFormat returns explicit when set, tables on a terminal and JSON otherwise.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat validates a format name. The empty string means auto-detect.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml", s)
	}
}
