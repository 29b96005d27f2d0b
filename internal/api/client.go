// Package api is the ServiApp backend façade: one typed method per REST
// endpoint, a shared HTTP wrapper underneath, and a uniform error shape on
// every failure path. It performs no persistence and holds no session state;
// that is the session package's job.
package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the production ServiApp API endpoint.
	DefaultBaseURL = "https://api.serviapp.com"
	// DefaultTimeout is the fixed request timeout. There is no retry logic:
	// a failed call surfaces its error once and retry is a user action.
	DefaultTimeout = 10 * time.Second
)

// TokenSource yields the bearer token to attach to outgoing requests.
// A (_, false) return means the request goes out anonymous.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the ServiApp API client.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	userAgent      string
	log            *zap.Logger
	tokens         TokenSource
	onUnauthorized func()

	// Services
	Auth         *AuthService
	Users        *UsersService
	Categories   *CategoriesService
	Services     *ServicesService
	Appointments *AppointmentsService
	Favorites    *FavoritesService
	Reviews      *ReviewsService
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTokenSource sets the bearer token source consulted on every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithUnauthorizedHandler registers a hook invoked whenever the backend
// answers 401. The session uses it to drop the stored token and profile.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// NewClient creates a new ServiApp API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: "serviapp-cli/1.0.0",
		log:       zap.NewNop(),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.Users = &UsersService{client: c}
	c.Categories = &CategoriesService{client: c}
	c.Services = &ServicesService{client: c}
	c.Appointments = &AppointmentsService{client: c}
	c.Favorites = &FavoritesService{client: c}
	c.Reviews = &ReviewsService{client: c}

	return c
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
