package parser

import (
	"io"
	"strings"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
)

// Maven parses `mvn dependency:tree` output, with or without the
// "[INFO] " log prefix. The root project line is not a dependency.
//
//	[INFO] +- org.springframework.boot:spring-boot-starter-web:jar:2.7.5:compile
//	[INFO] |  \- org.yaml:snakeyaml:jar:1.30:compile
type Maven struct{}

// Name implements Parser.
func (Maven) Name() string { return "maven" }

// Parse implements Parser.
func (m Maven) Parse(r io.Reader) ([]ardoq.Dependency, error) {
	return scan(m.Name(), r, parseMavenLine)
}

func parseMavenLine(line string) (ardoq.Dependency, bool) {
	line = strings.TrimPrefix(line, "[INFO] ")

	idx := strings.Index(line, "- ")
	if idx < 1 || (line[idx-1] != '+' && line[idx-1] != '\\') {
		return ardoq.Dependency{}, false
	}
	coord := strings.TrimSpace(line[idx+len("- "):])

	// Verbose trees wrap omitted nodes: (g:a:jar:1.0:compile - omitted for duplicate)
	if strings.HasPrefix(coord, "(") {
		coord = strings.TrimPrefix(coord, "(")
		if before, _, ok := strings.Cut(coord, " - "); ok {
			coord = before
		}
		coord = strings.TrimSuffix(coord, ")")
	}
	if f := strings.Fields(coord); len(f) > 0 {
		coord = f[0]
	}

	parts := strings.Split(coord, ":")
	var version string
	switch len(parts) {
	case 4: // g:a:type:version
		version = parts[3]
	case 5: // g:a:type:version:scope
		version = parts[3]
	case 6: // g:a:type:classifier:version:scope
		version = parts[4]
	default:
		return ardoq.Dependency{}, false
	}
	if parts[0] == "" || parts[1] == "" || version == "" {
		return ardoq.Dependency{}, false
	}
	return ardoq.Dependency{Name: parts[0] + ":" + parts[1], Version: version}, true
}
