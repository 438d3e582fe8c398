// Package httpclient talks to one environment's IDM over its REST admin API.
// Calls are authenticated with the OAuth2 client-credentials grant, retried
// with exponential backoff when idempotent, and guarded by a circuit breaker.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"devportal/internal/idm"
	id "devportal/pkg/domain"
	"devportal/pkg/platform/circuit"
	"devportal/pkg/platform/sentinel"
	"devportal/pkg/platform/tracer"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultMaxRetries     = 3
	defaultInitialBackoff = 200 * time.Millisecond
	maxResponseBytes      = 1 << 20
)

// StatusError is a non-2xx IDM response other than 404.
type StatusError struct {
	Operation  string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("idm %s: unexpected status %d", e.Operation, e.StatusCode)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

type Config struct {
	Environment    id.EnvironmentID
	BaseURL        string
	TokenURL       string
	ClientID       string
	ClientSecret   string
	Timeout        time.Duration
	MaxRetries     uint
	InitialBackoff time.Duration
	// HTTPClient is the transport used for both token and API calls.
	HTTPClient *http.Client
}

type Client struct {
	env            id.EnvironmentID
	baseURL        string
	http           *http.Client
	maxRetries     uint
	initialBackoff time.Duration
	breaker        *circuit.Breaker
	tracer         tracer.Tracer
	logger         *slog.Logger
}

type Option func(*Client)

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Environment == "" {
		return nil, errors.New("idm client: environment is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("idm client: invalid base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}

	c := &Client{
		env:            cfg.Environment,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           authenticatedClient(cfg),
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = circuit.New("idm-" + cfg.Environment.String())
	}
	if c.tracer == nil {
		c.tracer = tracer.NewNoop()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// authenticatedClient returns a client that fetches and refreshes bearer tokens
// from TokenURL. Without a TokenURL requests go out unauthenticated.
func authenticatedClient(cfg Config) *http.Client {
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.TokenURL == "" {
		return base
	}
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	authed := cc.Client(ctx)
	authed.Timeout = cfg.Timeout
	return authed
}

type clientResponse struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type createRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	ApplicationID string `json:"application_id"`
}

type scopesResponse struct {
	Scopes []string `json:"scopes"`
}

func (c *Client) CreateClient(ctx context.Context, env id.EnvironmentID, desc idm.ClientDescriptor) (idm.Client, error) {
	if err := c.checkEnv(env); err != nil {
		return idm.Client{}, err
	}
	body := createRequest{Name: desc.Name, Description: desc.Description, ApplicationID: desc.ApplicationID.String()}
	var resp clientResponse
	if err := c.call(ctx, "CreateClient", "", false, http.MethodPost, "/clients", body, &resp); err != nil {
		return idm.Client{}, err
	}
	if resp.ClientID == "" {
		return idm.Client{}, fmt.Errorf("idm CreateClient: empty client id: %w", sentinel.ErrUnavailable)
	}
	return idm.Client{ClientID: id.ClientID(resp.ClientID), Secret: resp.ClientSecret}, nil
}

func (c *Client) RotateSecret(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) (string, error) {
	if err := c.checkEnv(env); err != nil {
		return "", err
	}
	var resp clientResponse
	if err := c.call(ctx, "RotateSecret", clientID, false, http.MethodPost, clientPath(clientID)+"/secret", nil, &resp); err != nil {
		return "", err
	}
	return resp.ClientSecret, nil
}

func (c *Client) DeleteClient(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) error {
	if err := c.checkEnv(env); err != nil {
		return err
	}
	return c.call(ctx, "DeleteClient", clientID, true, http.MethodDelete, clientPath(clientID), nil, nil)
}

func (c *Client) AddScope(ctx context.Context, env id.EnvironmentID, clientID id.ClientID, scope string) error {
	if err := c.checkEnv(env); err != nil {
		return err
	}
	return c.call(ctx, "AddScope", clientID, true, http.MethodPut, scopePath(clientID, scope), nil, nil)
}

func (c *Client) RemoveScope(ctx context.Context, env id.EnvironmentID, clientID id.ClientID, scope string) error {
	if err := c.checkEnv(env); err != nil {
		return err
	}
	return c.call(ctx, "RemoveScope", clientID, true, http.MethodDelete, scopePath(clientID, scope), nil, nil)
}

func (c *Client) ListScopes(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) ([]string, error) {
	if err := c.checkEnv(env); err != nil {
		return nil, err
	}
	var resp scopesResponse
	if err := c.call(ctx, "ListScopes", clientID, true, http.MethodGet, clientPath(clientID)+"/scopes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Scopes, nil
}

func (c *Client) FetchClient(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) (string, error) {
	if err := c.checkEnv(env); err != nil {
		return "", err
	}
	var resp clientResponse
	if err := c.call(ctx, "FetchClient", clientID, true, http.MethodGet, clientPath(clientID), nil, &resp); err != nil {
		return "", err
	}
	return resp.ClientSecret, nil
}

func (c *Client) checkEnv(env id.EnvironmentID) error {
	if env != c.env {
		return fmt.Errorf("%w: %s (client serves %s)", idm.ErrUnknownEnvironment, env, c.env)
	}
	return nil
}

func clientPath(clientID id.ClientID) string {
	return "/clients/" + url.PathEscape(clientID.String())
}

func scopePath(clientID id.ClientID, scope string) string {
	return clientPath(clientID) + "/scopes/" + url.PathEscape(scope)
}

// call runs one IDM operation. Idempotent operations are retried on transport
// errors, 429 and 5xx; the breaker sees only the final outcome.
func (c *Client) call(ctx context.Context, op string, clientID id.ClientID, idempotent bool, method, path string, in, out any) error {
	ctx, span := c.tracer.Start(ctx, tracer.SpanIDMCall,
		tracer.String(tracer.AttrOperation, op),
		tracer.String(tracer.AttrEnvironment, c.env.String()),
		tracer.String(tracer.AttrClientID, clientID.String()),
	)

	attempts := 0
	err := c.breaker.Allow()
	if err != nil {
		err = fmt.Errorf("idm %s in %s: %w: %w", op, c.env, sentinel.ErrUnavailable, err)
	} else {
		tries := uint(1)
		if idempotent {
			tries = c.maxRetries + 1
		}
		_, err = backoff.Retry(ctx, func() (struct{}, error) {
			attempts++
			return struct{}{}, c.roundTrip(ctx, op, method, path, in, out)
		},
			backoff.WithBackOff(c.newBackOff()),
			backoff.WithMaxTries(tries),
			backoff.WithNotify(func(err error, wait time.Duration) {
				c.logger.WarnContext(ctx, "retrying idm call",
					"operation", op,
					"environment", c.env,
					"client_id", clientID,
					"wait", wait,
					"error", err,
				)
			}),
		)
		c.breaker.Record(breakerOutcome(err))
	}

	span.SetAttributes(tracer.Int(tracer.AttrAttempts, attempts))
	span.End(err)
	return err
}

func (c *Client) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialBackoff
	b.MaxInterval = 20 * c.initialBackoff
	b.Reset()
	return b
}

// breakerOutcome treats client-side errors as healthy responses.
func breakerOutcome(err error) error {
	if err == nil || errors.Is(err, idm.ErrClientNotFound) {
		return nil
	}
	var se *StatusError
	if errors.As(err, &se) && !se.retryable() {
		return nil
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("idm %s: encode request: %w", op, err))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("idm %s: build request: %w", op, err))
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(fmt.Errorf("idm %s: %w", op, ctx.Err()))
		}
		return fmt.Errorf("idm %s: %w: %w", op, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return backoff.Permanent(fmt.Errorf("idm %s: %w", op, idm.ErrClientNotFound))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		se := &StatusError{Operation: op, StatusCode: resp.StatusCode}
		if se.retryable() {
			return se
		}
		return backoff.Permanent(se)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("idm %s: decode response: %w", op, err))
	}
	return nil
}

var _ idm.Gateway = (*Client)(nil)
