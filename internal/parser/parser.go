// Package parser turns build-tool dependency reports into dependencies.
//
// Two report formats are supported: the output of `gradle dependencies` and
// of `mvn dependency:tree`. Each dependency name appears once in the result;
// when a report lists several versions the highest one is kept.
package parser

import (
	"bufio"
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// Parser extracts dependencies from a report.
type Parser interface {
	// Name returns the report format name.
	Name() string

	// Parse reads a report. An empty report or one without any dependency
	// is a validation error.
	Parse(r io.Reader) ([]ardoq.Dependency, error)
}

var registry = map[string]Parser{
	Gradle{}.Name(): Gradle{},
	Maven{}.Name():  Maven{},
}

// Get returns the parser for a format name.
func Get(name string) (Parser, error) {
	p, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.NewValidationError("parser", name, "unknown report format")
	}
	return p, nil
}

// Names returns the supported format names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseString parses report text with the named parser.
func ParseString(name, report string) ([]ardoq.Dependency, error) {
	p, err := Get(name)
	if err != nil {
		return nil, err
	}
	return p.Parse(strings.NewReader(report))
}

// Detect guesses the format of a report: maven when any line carries the
// [INFO] prefix or a maven coordinate with a packaging, gradle otherwise.
func Detect(report []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(report))
	scanner.Buffer(make([]byte, 0, 4096), constants.MaxDependencyLineLength)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "[INFO]") {
			return Maven{}.Name()
		}
		if _, ok := parseMavenLine(line); ok {
			return Maven{}.Name()
		}
	}
	return Gradle{}.Name()
}

// lineFunc extracts a dependency from one report line.
type lineFunc func(line string) (ardoq.Dependency, bool)

// scan applies fn to every line of r and deduplicates the results.
func scan(format string, r io.Reader, fn lineFunc) ([]ardoq.Dependency, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), constants.MaxDependencyLineLength)

	set := newDependencySet()
	lines := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) != "" {
			lines++
		}
		if dep, ok := fn(line); ok {
			set.add(dep)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapParse(format, "report", err)
	}

	if lines == 0 {
		return nil, errors.NewValidationError("body", "", "No body")
	}
	if set.len() == 0 {
		return nil, errors.NewValidationError("body", nil, "no dependencies found in "+format+" report")
	}
	return set.list(), nil
}

// dependencySet keeps the highest version seen per name.
type dependencySet struct {
	versions map[string]string
}

func newDependencySet() *dependencySet {
	return &dependencySet{versions: make(map[string]string)}
}

func (s *dependencySet) add(dep ardoq.Dependency) {
	current, ok := s.versions[dep.Name]
	if !ok || CompareVersions(dep.Version, current) > 0 {
		s.versions[dep.Name] = dep.Version
	}
}

func (s *dependencySet) len() int {
	return len(s.versions)
}

func (s *dependencySet) list() []ardoq.Dependency {
	out := make([]ardoq.Dependency, 0, len(s.versions))
	for name, version := range s.versions {
		out = append(out, ardoq.Dependency{Name: name, Version: version})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
