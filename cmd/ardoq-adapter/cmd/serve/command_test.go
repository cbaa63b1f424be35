package serve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/appcontext"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("HTTP_HOST", "")
	t.Setenv("SERVER_API_KEY", "")

	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "/api/v1", cfg.PathPrefix)
	assert.Equal(t, "X-API-Key", cfg.AuthHeader)
	assert.False(t, cfg.AuthEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 5*time.Minute, cfg.ReportTimeout)
}

func TestParseConfigEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_HOST", "0.0.0.0")
	t.Setenv("SERVER_API_KEY", "secret")

	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{"--auth"}))

	cfg, err := parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestParseConfigFlagsBeatEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_HOST", "0.0.0.0")

	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{"--port", "7000", "--host", "127.0.0.1", "--rate-limit", "0"}))

	cfg, err := parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Zero(t, cfg.RateLimit)
}

func TestParseConfigErrors(t *testing.T) {
	t.Run("auth without key", func(t *testing.T) {
		t.Setenv("SERVER_API_KEY", "")
		cmd := NewCommand(&appcontext.Mock{})
		require.NoError(t, cmd.ParseFlags([]string{"--auth"}))

		_, err := parseConfig(cmd)
		var cfgErr *errors.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "http")
		cmd := NewCommand(&appcontext.Mock{})
		require.NoError(t, cmd.ParseFlags(nil))

		_, err := parseConfig(cmd)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "8080", want: 8080},
		{in: "1", want: 1},
		{in: "65535", want: 65535},
		{in: "0", wantErr: true},
		{in: "65536", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePort(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunServerRequiresAdapter(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	cmd := NewCommand(&appcontext.Mock{
		AdapterFunc: func() (adapter.Adapter, error) {
			return nil, errors.NewConfigError("config", "ardoq.api_url is not set", nil)
		},
	})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
