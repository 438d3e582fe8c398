// Package service implements application registration and the credential
// lifecycle on top of the application store and the identity gateway.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,TeamStore,Gateway,ScopeFixer,AccessRequestFinder

import (
	"context"
	"errors"
	"log/slog"

	armodels "devportal/internal/accessrequest/models"
	"devportal/internal/application/metrics"
	"devportal/internal/application/models"
	"devportal/internal/environment"
	"devportal/internal/idm"
	"devportal/internal/scopes"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/audit"
	"devportal/pkg/platform/sentinel"
)

// Store persists whole application documents.
// Error contract:
//   - FindByID returns sentinel.ErrNotFound when no document exists
//   - Update returns sentinel.ErrConflict when app.Version is stale
type Store interface {
	FindByID(ctx context.Context, appID id.ApplicationID) (models.Application, error)
	Insert(ctx context.Context, app models.Application) (models.Application, error)
	Update(ctx context.Context, app models.Application) (models.Application, error)
	Delete(ctx context.Context, appID id.ApplicationID) error
}

// TeamStore returns sentinel.ErrNotFound for unknown teams.
type TeamStore interface {
	FindByID(ctx context.Context, teamID id.TeamID) (models.Team, error)
}

// Gateway is the client lifecycle part of the IDM.
type Gateway interface {
	CreateClient(ctx context.Context, env id.EnvironmentID, desc idm.ClientDescriptor) (idm.Client, error)
	RotateSecret(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) (string, error)
	DeleteClient(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) error
	FetchClient(ctx context.Context, env id.EnvironmentID, clientID id.ClientID) (string, error)
}

type ScopeFixer interface {
	Fix(ctx context.Context, app models.Application, requests []armodels.AccessRequest, target scopes.Target) (scopes.Result, error)
}

type ScopeMinimiser interface {
	Minimise(ctx context.Context, app models.Application, env id.EnvironmentID) (scopes.Result, error)
}

// AccessRequestFinder reads access requests straight from their store.
type AccessRequestFinder interface {
	Find(ctx context.Context, filter armodels.Filter) ([]armodels.AccessRequest, error)
}

// AccessRequestCanceller cancels every Pending access request matching filter.
type AccessRequestCanceller interface {
	CancelPending(ctx context.Context, filter armodels.Filter, by string) (int, error)
}

type Environments interface {
	All() []environment.Environment
	ByID(envID id.EnvironmentID) (environment.Environment, error)
}

type options struct {
	logger  *slog.Logger
	auditor *audit.Logger
	metrics *metrics.Metrics
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithAuditor(auditor *audit.Logger) Option {
	return func(o *options) {
		o.auditor = auditor
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// core carries what both services need to load and persist applications.
type core struct {
	store    Store
	requests AccessRequestFinder
	envs     Environments
	fixer    ScopeFixer
	options
}

// load reads a live application. Soft-deleted applications are reported as not found.
func (c *core) load(ctx context.Context, appID id.ApplicationID) (models.Application, error) {
	app, err := c.store.FindByID(ctx, appID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Application{}, dErrors.New(dErrors.CodeApplicationNotFound, "application not found")
	}
	if err != nil {
		c.metrics.IncUpstreamFailure("FindApplication")
		return models.Application{}, dErrors.Upstream(err, "FindApplication", "", appID.String())
	}
	if app.IsDeleted() {
		return models.Application{}, dErrors.New(dErrors.CodeApplicationNotFound, "application not found")
	}
	return app, nil
}

func (c *core) update(ctx context.Context, app models.Application) (models.Application, error) {
	updated, err := c.store.Update(ctx, app)
	if err != nil {
		return models.Application{}, c.persistError(err, "UpdateApplication", app.ID)
	}
	return updated, nil
}

func (c *core) persistError(err error, op string, appID id.ApplicationID) error {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "application was modified concurrently, reload and retry")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeApplicationNotFound, "application not found")
	default:
		c.metrics.IncUpstreamFailure(op)
		return dErrors.Upstream(err, op, "", appID.String())
	}
}

func (c *core) accessRequestsOf(ctx context.Context, appID id.ApplicationID) ([]armodels.AccessRequest, error) {
	ars, err := c.requests.Find(ctx, armodels.Filter{ApplicationID: &appID})
	if err != nil {
		c.metrics.IncUpstreamFailure("FindAccessRequests")
		return nil, dErrors.Upstream(err, "FindAccessRequests", "", appID.String())
	}
	return ars, nil
}

// upstream records and wraps an IDM failure.
func (c *core) upstream(err error, op string, env id.EnvironmentID, target string) error {
	c.metrics.IncUpstreamFailure(op)
	return dErrors.Upstream(err, op, env.String(), target)
}
