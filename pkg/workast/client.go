package workast

import (
	"math"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Version is reported in the User-Agent header.
const Version = "1.0.0"

// SDK defaults.
const (
	DefaultTimeout     = 120 * time.Second
	DefaultMaxRetries  = 0
	DefaultAPIBaseURL  = "https://api.todobot.io"
	DefaultAuthBaseURL = "https://my.workast.io"
)

// Wire constants.
const (
	ImpersonateTeamHeader = "W-TEAM-ID"
	ImpersonateUserHeader = "W-USER-ID"
	AuthenticationScheme  = "Bearer"
	DefaultContentType    = "application/json"
)

// AllowedMethods lists the HTTP methods APICall accepts.
var AllowedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
}

// Config is the immutable SDK-wide configuration of a Client.
type Config struct {
	Token       string
	Timeout     time.Duration
	MaxRetries  int
	APIBaseURL  string
	AuthBaseURL string
}

// Client is the Workast SDK entry point. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *Metrics
	limiter    *rate.Limiter
	newBackOff func() backoff.BackOff

	Tasks         *TasksService
	Lists         *ListsService
	Tags          *TagsService
	Notifications *NotificationsService
	Users         *UsersService
}

// Option is a functional option for configuring a Client.
type Option func(*Client) error

// WithTimeout sets the default per-attempt request timeout. It must be a
// whole number of milliseconds, at least one.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if !isWholeMillis(d) {
			return invalidParam("Timeout must be an integer greater than zero.")
		}
		c.cfg.Timeout = d
		return nil
	}
}

// WithMaxRetries sets how many times a failed attempt is retried.
// Retries are only safe for idempotent requests.
func WithMaxRetries(n int) Option {
	return func(c *Client) error {
		if !isIntInRange(n, 0, math.MaxInt) {
			return invalidParam("Max retries must be an integer greater than or equal to zero.")
		}
		c.cfg.MaxRetries = n
		return nil
	}
}

// WithAPIBaseURL overrides the API base URL. A single trailing slash is
// stripped.
func WithAPIBaseURL(base string) Option {
	return func(c *Client) error {
		base = trimBaseURL(base)
		if !isNonEmpty(base) {
			return invalidParam("API base URL must be a non-empty string.")
		}
		c.cfg.APIBaseURL = base
		return nil
	}
}

// WithAuthBaseURL overrides the authentication base URL.
func WithAuthBaseURL(base string) Option {
	return func(c *Client) error {
		base = trimBaseURL(base)
		if !isNonEmpty(base) {
			return invalidParam("Auth base URL must be a non-empty string.")
		}
		c.cfg.AuthBaseURL = base
		return nil
	}
}

// WithHTTPClient sets the http.Client used as transport. Timeouts are
// applied per attempt through the request context, so hc.Timeout can stay
// zero.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return invalidParam("HTTP client must not be nil.")
		}
		c.httpClient = hc
		return nil
	}
}

// WithLogger attaches a zap logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithMetrics records request metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) error {
		c.metrics = m
		return nil
	}
}

// WithRateLimit caps outbound attempts at r per second with the given burst.
// Every attempt, retries included, waits for a token.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) error {
		if r <= 0 || burst < 1 {
			return invalidParam("Rate limit must be positive with a burst of at least one.")
		}
		c.limiter = rate.NewLimiter(r, burst)
		return nil
	}
}

// WithRetryBackOff sets the factory for the delay policy between retries.
// A fresh policy is built for every call.
func WithRetryBackOff(f func() backoff.BackOff) Option {
	return func(c *Client) error {
		if f == nil {
			return invalidParam("Retry back-off factory must not be nil.")
		}
		c.newBackOff = f
		return nil
	}
}

// New creates a Client authenticated with token.
//
//	c, err := workast.New(token,
//	    workast.WithAPIBaseURL("https://api.todobot.io"),
//	    workast.WithMaxRetries(3),
//	)
//
// The token is checked first, then each option in order. The first invalid
// value fails construction with an *InvalidParameterError.
func New(token string, opts ...Option) (*Client, error) {
	if !isNonEmpty(token) {
		return nil, invalidParam("Token must be a non-empty string.")
	}

	c := &Client{
		cfg: Config{
			Token:       token,
			Timeout:     DefaultTimeout,
			MaxRetries:  DefaultMaxRetries,
			APIBaseURL:  DefaultAPIBaseURL,
			AuthBaseURL: DefaultAuthBaseURL,
		},
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}

	c.Tasks = newTasksService(c)
	c.Lists = newListsService(c)
	c.Tags = newTagsService(c)
	c.Notifications = newNotificationsService(c)
	c.Users = newUsersService(c)
	return c, nil
}

// MustNew is like New but panics on error. Useful in tests and program init.
func MustNew(token string, opts ...Option) *Client {
	c, err := New(token, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config { return c.cfg }
