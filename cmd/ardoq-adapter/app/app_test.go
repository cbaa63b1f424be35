package app

import (
	"context"
	"testing"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

func newTestApp(t *testing.T, cfg *Config) *App {
	t.Helper()
	a, err := New("1.2.3", "abc123", "2026-01-01", "test",
		WithConfig(cfg),
		WithLogger(logging.NewNopLogger()),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return a
}

func TestAppVersionInfo(t *testing.T) {
	a := newTestApp(t, &Config{})

	if a.Version() != "1.2.3" || a.Commit() != "abc123" || a.Date() != "2026-01-01" || a.BuiltBy() != "test" {
		t.Errorf("unexpected version info: %s %s %s %s", a.Version(), a.Commit(), a.Date(), a.BuiltBy())
	}
}

func TestAppAdapter(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t))
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	a := newTestApp(t, cfg)

	first, err := a.Adapter()
	if err != nil {
		t.Fatalf("Adapter() failed: %v", err)
	}
	second, err := a.Adapter()
	if err != nil {
		t.Fatalf("Adapter() failed: %v", err)
	}
	if first != second {
		t.Error("Adapter() should return the same instance")
	}

	fresh, err := a.AdapterWithOptions()
	if err != nil {
		t.Fatalf("AdapterWithOptions() failed: %v", err)
	}
	if fresh == first {
		t.Error("AdapterWithOptions() should build a new instance")
	}

	if a.Metrics() != a.Metrics() {
		t.Error("Metrics() should be a singleton")
	}
	if a.OutputFormat() != "json" {
		t.Errorf("OutputFormat() = %q, want json", a.OutputFormat())
	}
}

func TestAppAdapterUnconfigured(t *testing.T) {
	t.Setenv("ARDOQ_API_URL", "")
	a := newTestApp(t, &Config{})

	_, err := a.Adapter()
	var cfgErr *errors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Adapter() error = %v, want ConfigError", err)
	}
}

func TestExecute(t *testing.T) {
	a := newTestApp(t, &Config{})

	if err := a.Execute(context.Background(), []string{"version", "-q"}); err != nil {
		t.Fatalf("Execute(version) failed: %v", err)
	}
	if a.Config().Quiet != true {
		t.Error("persistent -q flag not applied")
	}

	if err := a.Execute(context.Background(), []string{"--config", "/nonexistent/adapter.yaml", "version"}); err == nil {
		t.Error("Execute() with a missing --config file should fail")
	}

	if err := a.Execute(context.Background(), []string{"reconcile"}); err == nil {
		t.Error("reconcile without arguments should fail")
	}
}

func TestShutdown(t *testing.T) {
	a := newTestApp(t, &Config{})
	if err := a.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
}
