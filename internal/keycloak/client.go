// Package keycloak calls the identity provider's admin REST API to issue admin
// tokens, create users and look up existing accounts.
//
// Calls are single-shot: nothing is retried and no token is cached. Failures
// follow two result shapes. FetchAdminToken, EmailExists and UsernameExists
// log the failure and hand it back as a value; CreateUser reports success or a
// human-readable message in a CreateUserResult.
package keycloak

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"tenantadmin/internal/platform/config"
	"tenantadmin/internal/platform/tracer"
)

// CategoryServerError is the log category for failed provider calls.
const CategoryServerError = "server error"

// adminClientID is the client used for the password grant.
const adminClientID = "admin-cli"

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Logger receives (category, detail) error pairs.
type Logger interface {
	Error(category, detail string)
}

// Config locates the admin API. Paths are appended verbatim to BaseURL.
type Config struct {
	BaseURL   string
	TokenPath string
	AdminPath string
	Username  string
	Password  string
	// Timeout bounds each call. Zero waits indefinitely.
	Timeout time.Duration
}

type Client struct {
	cfg     Config
	http    HTTPDoer
	logger  Logger
	tracer  tracer.Tracer
	metrics *Metrics
}

type Option func(*Client)

func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) { c.http = doer }
}

func WithLogger(l Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		logger: discardLogger{},
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	return c
}

type discardLogger struct{}

func (discardLogger) Error(string, string) {}

// apiRequest is one fully described call against the admin API.
type apiRequest struct {
	method string
	url    string
	header http.Header
	body   []byte
}

func (r apiRequest) build(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

// apiResponse is a fully read 2xx response.
type apiResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (c *Client) adminURL() string {
	return c.cfg.BaseURL + c.cfg.AdminPath
}

func bearer(token string) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Bearer "+token)
	return h
}

// send executes r. Transport errors are returned as they came from the
// HTTPDoer; non-2xx statuses become *HTTPError.
func (c *Client) send(ctx context.Context, operation, spanName string, r apiRequest) (_ *apiResponse, err error) {
	ctx, span := c.tracer.Start(ctx, spanName, tracer.String(tracer.AttrHTTPMethod, r.method))
	defer func() { span.End(err) }()

	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.observe(operation, time.Since(start), err)
		}
	}()

	req, err := r.build(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	span.SetAttributes(tracer.Int(tracer.AttrHTTPStatusCode, resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}
	return &apiResponse{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// ConfigFrom maps the process configuration onto a client Config.
func ConfigFrom(c config.Keycloak) Config {
	return Config{
		BaseURL:   c.BaseURL,
		TokenPath: c.TokenPath,
		AdminPath: c.AdminPath,
		Username:  c.Username,
		Password:  c.Password,
		Timeout:   c.Timeout,
	}
}
