package scopes

import (
	"context"
	"time"

	"devportal/internal/application/models"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/tracer"
)

// Minimiser detaches every remote scope not backed by the application's own
// Apis. It is destructive and only runs when asked for explicitly.
type Minimiser struct {
	gateway Gateway
	config
}

func NewMinimiser(gateway Gateway, opts ...Option) *Minimiser {
	return &Minimiser{gateway: gateway, config: newConfig(opts)}
}

func (m *Minimiser) Minimise(ctx context.Context, app models.Application, env id.EnvironmentID) (result Result, err error) {
	start := time.Now()
	result = Result{Environment: env, Changed: map[id.ClientID][]string{}}
	allowed := app.ApiScopes()
	credentials := app.CredentialsIn(env)

	ctx, span := m.tracer.Start(ctx, tracer.SpanMinimise,
		tracer.String(tracer.AttrApplicationID, app.ID.String()),
		tracer.String(tracer.AttrEnvironment, env.String()),
		tracer.Int(tracer.AttrCredentials, len(credentials)),
	)
	defer func() {
		span.SetAttributes(tracer.Int(tracer.AttrScopesRemoved, result.Total()))
		span.End(err)
		m.metrics.observe("minimise", time.Since(start).Seconds(), err)
		m.metrics.removed(env.String(), result.Total())
	}()

	err = fanOut(ctx, m.concurrency, credentials, &result, func(ctx context.Context, c models.Credential) ([]string, error) {
		return m.minimiseCredential(ctx, env, c.ClientID, allowed)
	})
	if err != nil {
		return result, err
	}
	if n := result.Total(); n > 0 {
		m.logger.InfoContext(ctx, "scopes minimised",
			"application_id", app.ID,
			"environment", env,
			"scopes_removed", n,
		)
	}
	return result, nil
}

func (m *Minimiser) minimiseCredential(ctx context.Context, env id.EnvironmentID, clientID id.ClientID, allowed map[string]struct{}) ([]string, error) {
	remote, err := m.gateway.ListScopes(ctx, env, clientID)
	if err != nil {
		return nil, dErrors.Upstream(err, "ListScopes", env.String(), clientID.String())
	}
	var removed []string
	for _, scope := range extra(remote, allowed) {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := m.gateway.RemoveScope(ctx, env, clientID, scope); err != nil {
			return removed, dErrors.Upstream(err, "RemoveScope", env.String(), clientID.String()+" scope "+scope)
		}
		removed = append(removed, scope)
	}
	return removed, nil
}
