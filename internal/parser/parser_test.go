package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

func render(deps []ardoq.Dependency) []byte {
	var b strings.Builder
	for _, d := range deps {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return []byte(b.String())
}

func TestReportsGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			f, err := os.Open(filepath.Join("testdata", name+".txt"))
			require.NoError(t, err)
			defer f.Close()

			p, err := Get(name)
			require.NoError(t, err)

			deps, err := p.Parse(f)
			require.NoError(t, err)
			g.Assert(t, name, render(deps))
		})
	}
}

func TestGradleLine(t *testing.T) {
	tests := []struct {
		line string
		want ardoq.Dependency
		ok   bool
	}{
		{"+--- a:b:1.0", ardoq.Dependency{Name: "a:b", Version: "1.0"}, true},
		{"|    \\--- a:b:1.0 -> 1.2 (*)", ardoq.Dependency{Name: "a:b", Version: "1.2"}, true},
		{"+--- a:b -> 2.0", ardoq.Dependency{Name: "a:b", Version: "2.0"}, true},
		{"+--- a:b:{strictly 1.0}", ardoq.Dependency{}, false},
		{"+--- project :common", ardoq.Dependency{}, false},
		{"+--- a:b:1.0 (n)", ardoq.Dependency{}, false},
		{"\\--- a:b:1.0 FAILED", ardoq.Dependency{}, false},
		{"compileClasspath - Compile classpath", ardoq.Dependency{}, false},
		{"--- a:b:1.0", ardoq.Dependency{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := parseGradleLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMavenLine(t *testing.T) {
	tests := []struct {
		line string
		want ardoq.Dependency
		ok   bool
	}{
		{"+- g:a:jar:1.0:compile", ardoq.Dependency{Name: "g:a", Version: "1.0"}, true},
		{"[INFO] |  \\- g:a:jar:1.0:test", ardoq.Dependency{Name: "g:a", Version: "1.0"}, true},
		{"+- g:a:jar:linux:2.0:runtime", ardoq.Dependency{Name: "g:a", Version: "2.0"}, true},
		{"+- g:a:pom:3.0", ardoq.Dependency{Name: "g:a", Version: "3.0"}, true},
		{"+- g:a:jar:1.0:compile (optional)", ardoq.Dependency{Name: "g:a", Version: "1.0"}, true},
		{"\\- (g:a:jar:1.0:compile - omitted for duplicate)", ardoq.Dependency{Name: "g:a", Version: "1.0"}, true},
		{"[INFO] uk.gov.hmcts:service:jar:0.0.1", ardoq.Dependency{}, false},
		{"[INFO] --- maven-dependency-plugin:3.3.0:tree (default-cli) @ x ---", ardoq.Dependency{}, false},
		{"+- g:a", ardoq.Dependency{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := parseMavenLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHighestVersionWins(t *testing.T) {
	deps, err := ParseString("gradle", strings.Join([]string{
		"+--- a:b:1.10.0",
		"+--- a:b:1.9.0",
		"+--- a:b:1.2.0-rc1",
		"\\--- c:d:beta",
		"\\--- c:d:alpha",
	}, "\n"))
	require.NoError(t, err)
	assert.Equal(t, []ardoq.Dependency{
		{Name: "a:b", Version: "1.10.0"},
		{Name: "c:d", Version: "beta"},
	}, deps)
}

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, 1, CompareVersions("1.10.0", "1.9.0"))
	assert.Equal(t, -1, CompareVersions("1.0.0-rc1", "1.0.0"))
	assert.Equal(t, 0, CompareVersions("2.0", "2.0.0"))
	assert.Equal(t, 1, CompareVersions("beta", "alpha"))
}

func TestParseErrors(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		_, err := ParseString("maven", "  \n\n")
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "No body")
	})

	t.Run("nothing found", func(t *testing.T) {
		_, err := ParseString("gradle", "BUILD SUCCESSFUL in 1s")
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Get("npm")
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestDetect(t *testing.T) {
	for _, tt := range []struct {
		file string
		want string
	}{
		{"gradle.txt", "gradle"},
		{"maven.txt", "maven"},
	} {
		data, err := os.ReadFile(filepath.Join("testdata", tt.file))
		require.NoError(t, err)
		assert.Equal(t, tt.want, Detect(data), tt.file)
	}

	assert.Equal(t, "maven", Detect([]byte("+- org.slf4j:slf4j-api:jar:2.0.9:compile\n")))
	assert.Equal(t, "gradle", Detect(nil))
}
