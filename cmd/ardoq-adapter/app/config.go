package app

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/config"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
)

// configName is the base name of the optional config file.
const configName = ".ardoq-adapter"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Logging configuration; LogLevel is the --log-level flag and
	// DefaultLogLevel comes from LOG_LEVEL or the config file
	LogLevel        string
	DefaultLogLevel string
	LogFormat       string
	LogOutput       string

	// v holds the adapter settings (ardoq.*, cache.*)
	v *viper.Viper
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables (ARDOQ_API_URL, ARDOQ_API_KEY, ...)
//  3. .env and .env.local files
//  4. Config file (configFile, or ~/.ardoq-adapter.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := newViper()
	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	return &Config{
		Verbose:         v.GetBool("verbose"),
		Quiet:           v.GetBool("quiet"),
		NoColor:         v.GetBool("no_color"),
		Format:          v.GetString("format"),
		ConfigFile:      v.ConfigFileUsed(),
		DefaultLogLevel: getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:       getEnvOrDefault("LOG_OUTPUT", "stderr"),
		v:               v,
	}, nil
}

// Viper returns the settings store read by the adapter builder.
func (c *Config) Viper() *viper.Viper {
	if c.v == nil {
		c.v = newViper()
	}
	return c.v
}

// ReadConfigFile merges an explicitly named config file, for --config.
func (c *Config) ReadConfigFile(path string) error {
	if path == "" {
		return nil
	}
	if err := readConfigFile(c.Viper(), path); err != nil {
		return err
	}
	c.ConfigFile = c.v.ConfigFileUsed()
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetDefault(config.KeyCacheSize, constants.DefaultCacheSize)
	v.SetDefault(config.KeyHTTPTimeout, constants.DefaultHTTPTimeout)
	v.SetDefault(config.KeyAuthScheme, "token")
	return v
}

// readConfigFile reads path, or searches the standard locations when path
// is empty. A missing file is only an error when it was named explicitly.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(configName)

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded second; godotenv never overrides a set variable.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
