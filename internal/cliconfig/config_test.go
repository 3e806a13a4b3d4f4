package cliconfig_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/workast/workast-sdk-go/internal/cliconfig"
	"github.com/workast/workast-sdk-go/pkg/workast"
)

func TestLoad_defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := cliconfig.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, workast.DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, workast.DefaultAuthBaseURL, cfg.AuthBaseURL)
	assert.Equal(t, 120000, cfg.TimeoutMS)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, "text", cfg.Output)
}

func TestLoad_fileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
token: wat::from-file
api_base_url: https://api.example.com
timeout_ms: 5000
max_retries: 2
team: T1
`), 0o600))
	t.Setenv("WORKAST_MAX_RETRIES", "4")
	t.Setenv("WORKAST_OUTPUT", "json")

	cfg, err := cliconfig.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "wat::from-file", cfg.Token)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5000, cfg.TimeoutMS)
	assert.Equal(t, 4, cfg.MaxRetries)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "T1", cfg.Team)
	assert.Len(t, cfg.CallOptions(), 1)
}

func TestLoad_missingExplicitFile(t *testing.T) {
	_, err := cliconfig.Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_badOutput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WORKAST_OUTPUT", "xml")

	_, err := cliconfig.Load(viper.New(), "")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	cfg := &cliconfig.Config{
		Token:       "wat::abc",
		APIBaseURL:  "https://api.example.com/",
		AuthBaseURL: workast.DefaultAuthBaseURL,
		TimeoutMS:   2500,
		MaxRetries:  1,
		RateLimit:   5,
	}
	c, err := cfg.NewClient(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, c.Config().Timeout)
	assert.Equal(t, "https://api.example.com", c.Config().APIBaseURL)
}

func TestNewClient_runtimeGuards(t *testing.T) {
	tests := []struct {
		name string
		cfg  cliconfig.Config
		want string
	}{
		{"no token", cliconfig.Config{TimeoutMS: 1000, APIBaseURL: "x", AuthBaseURL: "y"}, "Token"},
		{"zero timeout", cliconfig.Config{Token: "t", APIBaseURL: "x", AuthBaseURL: "y"}, "Timeout"},
		{"negative retries", cliconfig.Config{Token: "t", TimeoutMS: 1, MaxRetries: -1, APIBaseURL: "x", AuthBaseURL: "y"}, "Max retries"},
		{"empty api url", cliconfig.Config{Token: "t", TimeoutMS: 1, AuthBaseURL: "y"}, "API base URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.NewClient(zap.NewNop())
			require.Error(t, err)
			assert.True(t, workast.IsInvalidParameter(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSaveToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("team: T1\n"), 0o600))

	require.NoError(t, cliconfig.SaveToken(path, "wat::saved"))

	cfg, err := cliconfig.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "wat::saved", cfg.Token)
	assert.Equal(t, "T1", cfg.Team)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveToken_createsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".workast", "config.yaml")
	require.NoError(t, cliconfig.SaveToken(path, "wat::new"))

	cfg, err := cliconfig.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "wat::new", cfg.Token)
}
