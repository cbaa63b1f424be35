package output

import (
	"strconv"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
)

// Dependencies is a parsed dependency list.
type Dependencies []ardoq.Dependency

// TableData implements Tabular.
func (d Dependencies) TableData() Data {
	rows := make([][]string, 0, len(d))
	for _, dep := range d {
		rows = append(rows, []string{dep.Name, dep.Version})
	}
	return Data{
		Headers: []string{"name", "version"},
		Rows:    rows,
	}
}

// Value returns the underlying slice.
func (d Dependencies) Value() any {
	return []ardoq.Dependency(d)
}

// Summary is the result of mirroring one report.
type Summary adapter.Summary

// TableData implements Tabular: one row per dependency, followed by totals.
func (s Summary) TableData() Data {
	rows := make([][]string, 0, len(s.Dependencies)+4)
	for _, res := range s.Dependencies {
		rows = append(rows, []string{res.Name, res.Version, res.Status.String(), res.ComponentID})
	}

	rows = append(rows,
		[]string{"", "", "", ""},
		[]string{"components", "", totals(s.Components.Created, s.Components.Existing, s.Components.Error), ""},
		[]string{"references", "", referenceTotals(s.References), ""},
	)
	for _, msg := range s.Errors {
		rows = append(rows, []string{"error", "", msg, ""})
	}

	return Data{
		Headers:   []string{"dependency", "version", "status", "component_id"},
		Rows:      rows,
		Alignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// Value returns the underlying summary.
func (s Summary) Value() any {
	return adapter.Summary(s)
}

func totals(created, existing, failed int) string {
	return "created=" + strconv.Itoa(created) +
		" existing=" + strconv.Itoa(existing) +
		" error=" + strconv.Itoa(failed)
}

func referenceTotals(t ardoq.ReferenceTally) string {
	return "created=" + strconv.Itoa(t.Created) +
		" updated=" + strconv.Itoa(t.Updated) +
		" unchanged=" + strconv.Itoa(t.Unchanged) +
		" failed=" + strconv.Itoa(t.Failed)
}
