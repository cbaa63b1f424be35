package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/config"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
)

const testConfigYAML = `format: json
log_level: debug
ardoq:
  api_url: https://hmcts.ardoq.com
  api_key: secret
  vcs_host: github.com/hmcts
  batch: true
  vcs_hosting_workspace: ws-hosting
  code_repository_workspace: ws-repos
  software_frameworks_workspace: ws-frameworks
cache:
  size: 16
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adapter.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), constants.FilePermissions); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// TestLoadConfig verifies defaults when no config file exists.
func TestLoadConfig(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOG_OUTPUT", "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.LogFormat != "auto" {
		t.Errorf("LogFormat = %q, want auto", cfg.LogFormat)
	}
	if cfg.LogOutput != "stderr" {
		t.Errorf("LogOutput = %q, want stderr", cfg.LogOutput)
	}
	if got := cfg.Viper().GetInt(config.KeyCacheSize); got != constants.DefaultCacheSize {
		t.Errorf("cache size = %d, want %d", got, constants.DefaultCacheSize)
	}
}

// TestLoadConfigFile verifies settings are read from an explicit file.
func TestLoadConfigFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	path := writeConfig(t)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, path)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.DefaultLogLevel != "debug" {
		t.Errorf("DefaultLogLevel = %q, want debug", cfg.DefaultLogLevel)
	}

	settings, err := config.Load(cfg.Viper())
	if err != nil {
		t.Fatalf("config.Load() failed: %v", err)
	}
	if settings.APIURL != "https://hmcts.ardoq.com" {
		t.Errorf("APIURL = %q", settings.APIURL)
	}
	if !settings.Batch {
		t.Error("Batch not read from file")
	}
	if settings.Cache.Size != 16 {
		t.Errorf("Cache.Size = %d, want 16", settings.Cache.Size)
	}
	if settings.HTTPTimeout != constants.DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want default", settings.HTTPTimeout)
	}
}

// TestLoadConfigMissingFile verifies an explicit file must exist.
func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadConfig() with a missing explicit file should fail")
	}
}

// TestReadConfigFile verifies --config is merged after startup.
func TestReadConfigFile(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ReadConfigFile(""); err != nil {
		t.Fatalf("ReadConfigFile(\"\") failed: %v", err)
	}

	path := writeConfig(t)
	if err := cfg.ReadConfigFile(path); err != nil {
		t.Fatalf("ReadConfigFile() failed: %v", err)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, path)
	}
	if got := cfg.Viper().GetString(config.KeyVCSHost); got != "github.com/hmcts" {
		t.Errorf("vcs host = %q", got)
	}
}

// TestUpdateFromFlags verifies flags override loaded values only when set.
func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "yaml", LogLevel: ""}

	cfg.UpdateFromFlags(true, false, true, "", "")
	if !cfg.Verbose || cfg.Quiet || !cfg.NoColor {
		t.Errorf("boolean flags not applied: %+v", cfg)
	}
	if cfg.Format != "yaml" {
		t.Errorf("empty --format replaced Format: %q", cfg.Format)
	}

	cfg.UpdateFromFlags(false, false, false, "json", "warn")
	if cfg.Format != "json" || cfg.LogLevel != "warn" {
		t.Errorf("Format = %q, LogLevel = %q", cfg.Format, cfg.LogLevel)
	}
}
