package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger is a JSON logger whose output is captured for assertions.
type TestLogger struct {
	*zerolog.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer. Handlers log from several goroutines.
func (tl *TestLogger) Write(p []byte) (int, error) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.buf.Write(p)
}

// NewTestLogger creates a logger capturing every level. The global level is
// restored when the test ends.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(oldLevel)
	})

	tl := &TestLogger{}
	logger := zerolog.New(tl).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	tl.Logger = &logger
	return tl
}

// Output returns everything logged so far.
func (tl *TestLogger) Output() string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.buf.String()
}

// AssertContains fails the test unless the output contains substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if out := tl.Output(); !strings.Contains(out, substr) {
		t.Errorf("log output does not contain %q\noutput:\n%s", substr, out)
	}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
