package parser

import (
	"io"
	"strings"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
)

// Gradle parses `gradle dependencies` output.
//
// Tree lines look like:
//
//	+--- org.slf4j:slf4j-api:1.7.36 -> 2.0.9
//	|    \--- org.yaml:snakeyaml:1.30 (*)
//	\--- org.springframework.boot:spring-boot-starter-web -> 2.7.5
type Gradle struct{}

// Name implements Parser.
func (Gradle) Name() string { return "gradle" }

// Parse implements Parser.
func (g Gradle) Parse(r io.Reader) ([]ardoq.Dependency, error) {
	return scan(g.Name(), r, parseGradleLine)
}

var gradleMarkers = []string{" (*)", " (c)", " (n)"}

func parseGradleLine(line string) (ardoq.Dependency, bool) {
	idx := strings.Index(line, "--- ")
	if idx < 1 || (line[idx-1] != '+' && line[idx-1] != '\\') {
		return ardoq.Dependency{}, false
	}
	coord := strings.TrimSpace(line[idx+len("--- "):])

	// (n) marks a dependency that was never resolved.
	if strings.HasSuffix(coord, " (n)") || strings.HasSuffix(coord, " FAILED") || strings.HasPrefix(coord, "project ") {
		return ardoq.Dependency{}, false
	}
	for _, m := range gradleMarkers {
		coord = strings.TrimSuffix(coord, m)
	}

	requested, resolved, hasResolved := strings.Cut(coord, " -> ")
	parts := strings.Split(strings.TrimSpace(requested), ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ardoq.Dependency{}, false
	}

	name := parts[0] + ":" + parts[1]
	var version string
	switch {
	case hasResolved:
		version = strings.TrimSpace(resolved)
	case len(parts) == 3:
		version = parts[2]
	}
	if version == "" || strings.ContainsAny(version, " {}") {
		return ardoq.Dependency{}, false
	}
	return ardoq.Dependency{Name: name, Version: version}, true
}
