// Package config reads adapter settings from Viper.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/cache"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/transport"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// Configuration keys.
const (
	KeyAPIURL      = "ardoq.api_url"
	KeyAPIKey      = "ardoq.api_key"
	KeyAuthScheme  = "ardoq.auth_scheme"
	KeyVCSHost     = "ardoq.vcs_host"
	KeyBatch       = "ardoq.batch"
	KeyHTTPTimeout = "ardoq.http_timeout"
	KeyCacheSize   = "cache.size"
	KeyCacheTTL    = "cache.ttl"
)

// WorkspaceKey returns the key holding the root workspace id of w,
// for example "ardoq.code_repository_workspace".
func WorkspaceKey(w ardoq.Workspace) string {
	return "ardoq." + w.String() + "_workspace"
}

// ComponentTypeKey returns the key overriding the component type of w.
func ComponentTypeKey(w ardoq.Workspace) string {
	return "ardoq." + w.String() + "_component_type"
}

// GetString is a helper to get string values from Viper.
// It falls back to the OS environment using the upper-cased key with
// dots replaced by underscores.
func GetString(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(envName(key))
}

func envName(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// Workspaces builds the workspace table from configuration.
func Workspaces(v *viper.Viper) (ardoq.Workspaces, error) {
	entries := make(map[ardoq.Workspace]ardoq.WorkspaceConfig)
	var missing []string
	for _, w := range ardoq.AllWorkspaces() {
		id := GetString(v, WorkspaceKey(w))
		if id == "" {
			missing = append(missing, WorkspaceKey(w))
			continue
		}
		entries[w] = ardoq.WorkspaceConfig{
			ID:            id,
			ComponentType: GetString(v, ComponentTypeKey(w)),
		}
	}
	if len(missing) > 0 {
		return ardoq.Workspaces{}, errors.NewConfigError("workspaces", "missing "+strings.Join(missing, ", "), nil)
	}
	return ardoq.NewWorkspaces(entries)
}

// APIKey returns the configured API key, or an AuthenticationError when unset.
func APIKey(v *viper.Viper) (string, error) {
	key := GetString(v, KeyAPIKey)
	if key == "" {
		return "", &errors.AuthenticationError{
			Service: "ardoq",
			Method:  "token",
			Message: KeyAPIKey + " is not set",
		}
	}
	return key, nil
}

// Settings are the adapter settings read from configuration.
type Settings struct {
	APIURL      string
	APIKey      string
	AuthScheme  string
	VCSHost     string
	Batch       bool
	HTTPTimeout time.Duration
	Cache       cache.Config
	Workspaces  ardoq.Workspaces
}

// Load reads and validates the adapter settings.
func Load(v *viper.Viper) (*Settings, error) {
	apiURL := GetString(v, KeyAPIURL)
	if apiURL == "" {
		return nil, errors.NewConfigError("config", KeyAPIURL+" is not set", nil)
	}

	scheme := GetString(v, KeyAuthScheme)
	var apiKey string
	if scheme != "none" {
		key, err := APIKey(v)
		if err != nil {
			return nil, err
		}
		apiKey = key
	}

	ws, err := Workspaces(v)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		APIURL:      apiURL,
		APIKey:      apiKey,
		AuthScheme:  scheme,
		VCSHost:     GetString(v, KeyVCSHost),
		Batch:       v.GetBool(KeyBatch),
		HTTPTimeout: v.GetDuration(KeyHTTPTimeout),
		Cache: cache.Config{
			Size: v.GetInt(KeyCacheSize),
			TTL:  v.GetDuration(KeyCacheTTL),
		},
		Workspaces: ws,
	}
	if s.HTTPTimeout <= 0 {
		s.HTTPTimeout = constants.DefaultHTTPTimeout
	}
	return s, nil
}

// Options converts the settings into adapter options.
func (s *Settings) Options() ([]adapter.Option, error) {
	c, err := cache.New(s.Cache)
	if err != nil {
		return nil, err
	}

	return []adapter.Option{
		adapter.WithAPI(s.APIURL, s.APIKey),
		adapter.WithAuthenticator(transport.ParseAuthenticator(s.AuthScheme)),
		adapter.WithHTTPTimeout(s.HTTPTimeout),
		adapter.WithWorkspaces(s.Workspaces),
		adapter.WithCache(c),
		adapter.WithBatch(s.Batch),
		adapter.WithVCSHost(s.VCSHost),
	}, nil
}
