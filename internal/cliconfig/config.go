// Package cliconfig loads the workast CLI configuration from
// ~/.workast/config.yaml, WORKAST_* environment variables and flags.
package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/workast/workast-sdk-go/pkg/workast"
)

// Keys understood in the config file and as WORKAST_<KEY> env vars.
const (
	KeyToken       = "token"
	KeyAPIBaseURL  = "api_base_url"
	KeyAuthBaseURL = "auth_base_url"
	KeyTimeoutMS   = "timeout_ms"
	KeyMaxRetries  = "max_retries"
	KeyOutput      = "output"
	KeyTeam        = "team"
	KeyUser        = "user"
	KeyRateLimit   = "rate_limit"
	KeyVerbose     = "verbose"
)

// Config is the resolved CLI configuration.
type Config struct {
	Token       string  `mapstructure:"token"`
	APIBaseURL  string  `mapstructure:"api_base_url"`
	AuthBaseURL string  `mapstructure:"auth_base_url"`
	TimeoutMS   int     `mapstructure:"timeout_ms"`
	MaxRetries  int     `mapstructure:"max_retries"`
	Output      string  `mapstructure:"output"`
	Team        string  `mapstructure:"team"`
	User        string  `mapstructure:"user"`
	RateLimit   float64 `mapstructure:"rate_limit"`
	Verbose     bool    `mapstructure:"verbose"`
}

// DefaultPath returns ~/.workast/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".workast", "config.yaml"), nil
}

// SetDefaults registers every key so that env vars and Unmarshal see them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyToken, "")
	v.SetDefault(KeyAPIBaseURL, workast.DefaultAPIBaseURL)
	v.SetDefault(KeyAuthBaseURL, workast.DefaultAuthBaseURL)
	v.SetDefault(KeyTimeoutMS, int(workast.DefaultTimeout/time.Millisecond))
	v.SetDefault(KeyMaxRetries, workast.DefaultMaxRetries)
	v.SetDefault(KeyOutput, "text")
	v.SetDefault(KeyTeam, "")
	v.SetDefault(KeyUser, "")
	v.SetDefault(KeyRateLimit, 0)
	v.SetDefault(KeyVerbose, false)
}

// Load reads file (or the default path when empty) into v and decodes it.
// A missing default file is not an error; a missing explicit file is.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("WORKAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".workast"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Output != "text" && cfg.Output != "json" {
		return nil, fmt.Errorf("output must be text or json, got %q", cfg.Output)
	}
	return &cfg, nil
}

// NewClient builds an SDK client. Values from files and env vars go through
// the SDK option checks, so bad settings fail here with the SDK's messages.
func (c *Config) NewClient(logger *zap.Logger) (*workast.Client, error) {
	opts := []workast.Option{
		workast.WithTimeout(time.Duration(c.TimeoutMS) * time.Millisecond),
		workast.WithMaxRetries(c.MaxRetries),
		workast.WithAPIBaseURL(c.APIBaseURL),
		workast.WithAuthBaseURL(c.AuthBaseURL),
		workast.WithLogger(logger),
	}
	if c.RateLimit > 0 {
		opts = append(opts, workast.WithRateLimit(rate.Limit(c.RateLimit), 1))
	}
	client, err := workast.New(c.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("configure client: %w", err)
	}
	return client, nil
}

// CallOptions returns the impersonation options configured for every call.
func (c *Config) CallOptions() []workast.CallOption {
	var opts []workast.CallOption
	if c.Team != "" {
		opts = append(opts, workast.WithImpersonateTeam(c.Team))
	}
	if c.User != "" {
		opts = append(opts, workast.WithImpersonateUser(c.User))
	}
	return opts
}

// SaveToken writes token into the config file at path, keeping other keys.
func SaveToken(path, token string) error {
	if token == "" {
		return errors.New("token must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	v.Set(KeyToken, token)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0o600)
}
