package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

func TestWorkspaces(t *testing.T) {
	v := viper.New()
	v.Set("ardoq.vcs_hosting_workspace", "h")
	v.Set("ardoq.code_repository_workspace", "r")
	v.Set("ardoq.software_frameworks_component_type", "p-override")
	t.Setenv("ARDOQ_SOFTWARE_FRAMEWORKS_WORKSPACE", "f")

	ws, err := Workspaces(v)
	require.NoError(t, err)

	cfg, ok := ws.Lookup(ardoq.SoftwareFrameworks)
	require.True(t, ok)
	assert.Equal(t, ardoq.WorkspaceConfig{ID: "f", ComponentType: "p-override"}, cfg)

	cfg, ok = ws.Lookup(ardoq.CodeRepository)
	require.True(t, ok)
	assert.Equal(t, ardoq.DefaultRepositoryComponentType, cfg.ComponentType)
}

func TestWorkspacesMissing(t *testing.T) {
	v := viper.New()
	v.Set("ardoq.vcs_hosting_workspace", "h")

	_, err := Workspaces(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ardoq.code_repository_workspace")
	assert.Contains(t, err.Error(), "ardoq.software_frameworks_workspace")
}

func TestAPIKey(t *testing.T) {
	v := viper.New()
	_, err := APIKey(v)
	assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)

	v.Set(KeyAPIKey, "secret")
	key, err := APIKey(v)
	require.NoError(t, err)
	assert.Equal(t, "secret", key)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "ARDOQ_API_URL", envName("ardoq.api_url"))
	assert.Equal(t, "LOG_LEVEL", envName("log-level"))
}

func fullConfig() *viper.Viper {
	v := viper.New()
	v.Set(KeyAPIURL, "https://org.ardoq.com")
	v.Set(KeyAPIKey, "secret")
	v.Set("ardoq.vcs_hosting_workspace", "h")
	v.Set("ardoq.code_repository_workspace", "r")
	v.Set("ardoq.software_frameworks_workspace", "f")
	return v
}

func TestLoad(t *testing.T) {
	v := fullConfig()
	v.Set(KeyVCSHost, "github.com/hmcts")
	v.Set(KeyBatch, true)
	v.Set(KeyCacheTTL, "10m")

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://org.ardoq.com", s.APIURL)
	assert.Equal(t, "secret", s.APIKey)
	assert.Equal(t, "github.com/hmcts", s.VCSHost)
	assert.True(t, s.Batch)
	assert.Equal(t, constants.DefaultHTTPTimeout, s.HTTPTimeout)
	assert.Equal(t, 10*time.Minute, s.Cache.TTL)

	opts, err := s.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 7)

	a, err := adapter.New(opts...)
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		v := fullConfig()
		v.Set(KeyAPIURL, "")
		_, err := Load(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), KeyAPIURL)
	})

	t.Run("missing key", func(t *testing.T) {
		v := fullConfig()
		v.Set(KeyAPIKey, "")
		_, err := Load(v)
		assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)
	})

	t.Run("no auth needs no key", func(t *testing.T) {
		v := fullConfig()
		v.Set(KeyAPIKey, "")
		v.Set(KeyAuthScheme, "none")
		_, err := Load(v)
		assert.NoError(t, err)
	})

	t.Run("negative cache size", func(t *testing.T) {
		v := fullConfig()
		v.Set(KeyCacheSize, -1)
		s, err := Load(v)
		require.NoError(t, err)
		_, err = s.Options()
		assert.Error(t, err)
	})
}
