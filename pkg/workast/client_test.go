package workast_test

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workast/workast-sdk-go/internal/apitest"
	"github.com/workast/workast-sdk-go/pkg/workast"
)

const testToken = "wat::test-token"

// newTestClient points a client at srv and removes the delay between retries.
func newTestClient(t *testing.T, srv *apitest.Server, opts ...workast.Option) *workast.Client {
	t.Helper()
	base := []workast.Option{
		workast.WithAPIBaseURL(srv.URL),
		workast.WithRetryBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	}
	c, err := workast.New(testToken, append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNew_defaults(t *testing.T) {
	c, err := workast.New(testToken)
	require.NoError(t, err)

	cfg := c.Config()
	assert.Equal(t, testToken, cfg.Token)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, "https://api.todobot.io", cfg.APIBaseURL)
	assert.Equal(t, "https://my.workast.io", cfg.AuthBaseURL)

	assert.NotNil(t, c.Tasks)
	assert.NotNil(t, c.Lists)
	assert.NotNil(t, c.Tags)
	assert.NotNil(t, c.Notifications)
	assert.NotNil(t, c.Users)
}

func TestNew_overrides(t *testing.T) {
	c, err := workast.New(testToken,
		workast.WithTimeout(5*time.Second),
		workast.WithMaxRetries(3),
		workast.WithAPIBaseURL("https://api.example.com/"),
		workast.WithAuthBaseURL("https://auth.example.com/"),
	)
	require.NoError(t, err)

	cfg := c.Config()
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, "https://auth.example.com", cfg.AuthBaseURL)
}

func TestNew_emptyToken(t *testing.T) {
	c, err := workast.New("")
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, workast.IsInvalidParameter(err))
	assert.Contains(t, err.Error(), "Token")
}

func TestNew_invalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  workast.Option
		want string
	}{
		{"zero timeout", workast.WithTimeout(0), "Timeout must be an integer greater than zero."},
		{"negative timeout", workast.WithTimeout(-time.Second), "Timeout must be an integer greater than zero."},
		{"fractional millis", workast.WithTimeout(1500 * time.Microsecond), "Timeout must be an integer greater than zero."},
		{"negative retries", workast.WithMaxRetries(-1), "Max retries must be an integer greater than or equal to zero."},
		{"empty api url", workast.WithAPIBaseURL(""), "API base URL must be a non-empty string."},
		{"slash api url", workast.WithAPIBaseURL("/"), "API base URL must be a non-empty string."},
		{"empty auth url", workast.WithAuthBaseURL(""), "Auth base URL must be a non-empty string."},
		{"slash auth url", workast.WithAuthBaseURL("/"), "Auth base URL must be a non-empty string."},
		{"nil http client", workast.WithHTTPClient(nil), "HTTP client must not be nil."},
		{"zero rate", workast.WithRateLimit(0, 1), "Rate limit must be positive with a burst of at least one."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := workast.New(testToken, tt.opt)
			require.Error(t, err)
			assert.Nil(t, c)

			var ip *workast.InvalidParameterError
			require.ErrorAs(t, err, &ip)
			assert.Equal(t, tt.want, ip.Message)
		})
	}
}

func TestNew_tokenCheckedBeforeOptions(t *testing.T) {
	_, err := workast.New("", workast.WithTimeout(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Token")
}

func TestMustNew_panics(t *testing.T) {
	assert.Panics(t, func() { workast.MustNew("") })
	assert.NotPanics(t, func() { workast.MustNew(testToken) })
}
