package scopes

//go:generate mockgen -source=fixer.go -destination=mocks/mocks.go -package=mocks Gateway,Environments

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	armodels "devportal/internal/accessrequest/models"
	"devportal/internal/application/models"
	"devportal/internal/environment"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/tracer"
)

const defaultConcurrency = 4

// Gateway is the slice of the IDM the reconciler needs.
type Gateway interface {
	AddScope(ctx context.Context, env id.EnvironmentID, clientID id.ClientID, scope string) error
	RemoveScope(ctx context.Context, env id.EnvironmentID, clientID id.ClientID, scope string) error
	ListScopes(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) ([]string, error)
}

// Environments resolves environment ids.
type Environments interface {
	ByID(envID id.EnvironmentID) (environment.Environment, error)
}

// Result reports the scopes changed per credential during a run.
type Result struct {
	Environment id.EnvironmentID
	Changed     map[id.ClientID][]string
}

// Total is the number of scopes changed across all credentials.
func (r Result) Total() int {
	n := 0
	for _, s := range r.Changed {
		n += len(s)
	}
	return n
}

type config struct {
	logger      *slog.Logger
	tracer      tracer.Tracer
	metrics     *Metrics
	concurrency int
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *config) {
		c.tracer = t
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithConcurrency bounds how many credentials are reconciled at once.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracer == nil {
		c.tracer = tracer.NewNoop()
	}
	return c
}

// Fixer attaches missing scopes to remote clients. It never removes a scope and
// never rolls back: a failed run may leave some additions in place, and the
// next run picks up from the remote state.
type Fixer struct {
	gateway Gateway
	envs    Environments
	config
}

func NewFixer(gateway Gateway, envs Environments, opts ...Option) *Fixer {
	return &Fixer{gateway: gateway, envs: envs, config: newConfig(opts)}
}

// Fix converges the credentials selected by target so that each holds at least
// Required(app, requests, env). Credentials are handled concurrently, the
// additions for one credential in order. The first failure cancels the rest
// and is returned as an upstream failure naming the operation and client.
func (f *Fixer) Fix(ctx context.Context, app models.Application, requests []armodels.AccessRequest, target Target) (Result, error) {
	start := time.Now()
	result, err := f.fix(ctx, app, requests, target)
	f.metrics.observe("fix", time.Since(start).Seconds(), err)
	return result, err
}

func (f *Fixer) fix(ctx context.Context, app models.Application, requests []armodels.AccessRequest, target Target) (result Result, err error) {
	result = Result{Environment: target.Environment, Changed: map[id.ClientID][]string{}}

	env, err := f.envs.ByID(target.Environment)
	if err != nil {
		return result, err
	}
	credentials, err := selectCredentials(app, target)
	if err != nil {
		return result, err
	}
	required := Required(app, requests, env)

	ctx, span := f.tracer.Start(ctx, tracer.SpanFixRun,
		tracer.String(tracer.AttrApplicationID, app.ID.String()),
		tracer.String(tracer.AttrEnvironment, env.ID.String()),
		tracer.Int(tracer.AttrCredentials, len(credentials)),
	)
	defer func() {
		span.SetAttributes(tracer.Int(tracer.AttrScopesAdded, result.Total()))
		span.End(err)
	}()

	if len(required) == 0 || len(credentials) == 0 {
		return result, nil
	}

	err = fanOut(ctx, f.concurrency, credentials, &result, func(ctx context.Context, c models.Credential) ([]string, error) {
		return f.fixCredential(ctx, env.ID, c.ClientID, required)
	})
	f.metrics.added(env.ID.String(), result.Total())
	if err != nil {
		f.logger.WarnContext(ctx, "scope fix incomplete",
			"application_id", app.ID,
			"environment", env.ID,
			"scopes_added", result.Total(),
			"error", err,
		)
		return result, err
	}
	if n := result.Total(); n > 0 {
		f.logger.InfoContext(ctx, "scopes fixed",
			"application_id", app.ID,
			"environment", env.ID,
			"scopes_added", n,
		)
	}
	return result, nil
}

func (f *Fixer) fixCredential(ctx context.Context, env id.EnvironmentID, clientID id.ClientID, required []string) (added []string, err error) {
	ctx, span := f.tracer.Start(ctx, tracer.SpanFixCredential,
		tracer.String(tracer.AttrEnvironment, env.String()),
		tracer.String(tracer.AttrClientID, clientID.String()),
	)
	defer func() {
		span.SetAttributes(tracer.Int(tracer.AttrScopesAdded, len(added)))
		span.End(err)
	}()

	remote, err := f.gateway.ListScopes(ctx, env, clientID)
	if err != nil {
		return nil, dErrors.Upstream(err, "ListScopes", env.String(), clientID.String())
	}
	for _, scope := range missing(required, remote) {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		if err := f.gateway.AddScope(ctx, env, clientID, scope); err != nil {
			return added, dErrors.Upstream(err, "AddScope", env.String(), clientID.String()+" scope "+scope)
		}
		added = append(added, scope)
	}
	return added, nil
}

func selectCredentials(app models.Application, target Target) ([]models.Credential, error) {
	if target.ClientID == nil {
		return app.CredentialsIn(target.Environment), nil
	}
	c, ok := app.FindCredential(target.Environment, *target.ClientID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeCredentialNotFound, "credential not found")
	}
	return []models.Credential{c}, nil
}

// fanOut runs fn for every credential on a bounded errgroup and collects the
// changed scopes into result. All goroutines are joined before it returns.
func fanOut(
	ctx context.Context,
	limit int,
	credentials []models.Credential,
	result *Result,
	fn func(context.Context, models.Credential) ([]string, error),
) error {
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, c := range credentials {
		g.Go(func() error {
			changed, err := fn(ctx, c)
			if len(changed) > 0 {
				mu.Lock()
				result.Changed[c.ClientID] = changed
				mu.Unlock()
			}
			return err
		})
	}
	return g.Wait()
}
