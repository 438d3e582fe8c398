package service

import (
	"context"
	"errors"

	"devportal/internal/application/models"
	"devportal/internal/idm"
	"devportal/internal/scopes"
	id "devportal/pkg/domain"
	"devportal/pkg/platform/audit"
	"devportal/pkg/requestcontext"
)

// CredentialService manages the OAuth credentials an application holds per environment.
type CredentialService struct {
	core
	gateway Gateway
}

func NewCredentialService(
	store Store,
	gateway Gateway,
	envs Environments,
	fixer ScopeFixer,
	requests AccessRequestFinder,
	opts ...Option,
) *CredentialService {
	return &CredentialService{
		core: core{
			store:    store,
			requests: requests,
			envs:     envs,
			fixer:    fixer,
			options:  newOptions(opts),
		},
		gateway: gateway,
	}
}

// ListCredentials returns the credentials of appID in envID. In production-like
// environments the stored records are returned without touching the IDM and
// hidden credentials carry no secret. Elsewhere each secret is re-read from the IDM.
func (s *CredentialService) ListCredentials(ctx context.Context, appID id.ApplicationID, envID id.EnvironmentID) ([]models.Credential, error) {
	env, err := s.envs.ByID(envID)
	if err != nil {
		return nil, err
	}
	app, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}

	creds := app.CredentialsIn(env.ID)
	out := make([]models.Credential, 0, len(creds))
	for _, c := range creds {
		if env.ProductionLike {
			out = append(out, c.WithoutSecret())
			continue
		}
		secret, err := s.gateway.FetchClient(ctx, env.ID, c.ClientID)
		if errors.Is(err, idm.ErrClientNotFound) {
			s.logger.WarnContext(ctx, "credential has no remote client",
				"application_id", appID,
				"environment", env.ID,
				"client_id", c.ClientID,
			)
			out = append(out, c.WithoutSecret())
			continue
		}
		if err != nil {
			return nil, s.upstream(err, "FetchClient", env.ID, c.ClientID.String())
		}
		out = append(out, c.WithSecret(secret))
	}
	return out, nil
}

// AddCredential issues a credential for appID in envID and returns it with its
// one-time secret. In a production-like environment whose oldest credential is
// still hidden, that credential's secret is rotated and revealed instead of
// creating a new client. The application is persisted right after the IDM call;
// a persistence failure leaves the remote client in place. Scopes are fixed
// only for a newly created credential; if that fails the persisted credential is
// returned together with the error.
func (s *CredentialService) AddCredential(ctx context.Context, appID id.ApplicationID, envID id.EnvironmentID, actor string) (models.Credential, error) {
	env, err := s.envs.ByID(envID)
	if err != nil {
		return models.Credential{}, err
	}
	app, err := s.load(ctx, appID)
	if err != nil {
		return models.Credential{}, err
	}
	if err := app.CanAddCredential(env.ID); err != nil {
		return models.Credential{}, err
	}

	now := requestcontext.Now(ctx)
	var (
		issued models.Credential
		stored models.Credential
		next   models.Application
		isNew  bool
	)
	primary, hasPrimary := app.PrimaryCredential(env.ID)
	if env.ProductionLike && hasPrimary && primary.Hidden {
		secret, err := s.gateway.RotateSecret(ctx, env.ID, primary.ClientID)
		if err != nil {
			return models.Credential{}, s.upstream(err, "RotateSecret", env.ID, primary.ClientID.String())
		}
		issued = primary.Revealed(secret)
		stored = issued.WithoutSecret()
		next = app.WithCredentialReplaced(stored, now)
	} else {
		client, err := s.gateway.CreateClient(ctx, env.ID, idm.ClientDescriptor{
			ApplicationID: app.ID,
			Name:          app.Name,
			Description:   "created by " + actor,
		})
		if err != nil {
			return models.Credential{}, s.upstream(err, "CreateClient", env.ID, app.ID.String())
		}
		issued = models.NewCredential(env.ID, client.ClientID, client.Secret, now)
		stored = issued
		if env.ProductionLike {
			stored = issued.WithoutSecret()
		}
		next = app.WithCredential(stored, now)
		isNew = true
	}

	updated, err := s.update(ctx, next)
	if err != nil {
		s.logger.ErrorContext(ctx, "credential issued remotely but not persisted",
			"application_id", app.ID,
			"environment", env.ID,
			"client_id", issued.ClientID,
			"error", err,
		)
		return models.Credential{}, err
	}

	kind := "revealed"
	action := audit.EventCredentialAdded
	if isNew {
		kind = "created"
	} else {
		action = audit.EventCredentialRevealed
	}
	s.metrics.IncCredentialAdded(env.ID.String(), kind)
	s.auditor.Log(ctx, action,
		"actor", actor,
		"application_id", app.ID.String(),
		"environment", env.ID.String(),
		"subject", issued.ClientID.String(),
	)
	if !isNew {
		return issued, nil
	}

	// The credential exists from here on, so failures return it with its
	// one-time secret alongside the error.
	ars, err := s.accessRequestsOf(ctx, app.ID)
	if err != nil {
		return issued, err
	}
	if _, err := s.fixer.Fix(ctx, updated, ars, scopes.CredentialTarget(env.ID, issued.ClientID)); err != nil {
		return issued, err
	}
	return issued, nil
}

// DeleteCredential removes clientID from appID in envID. A remote client that
// is already gone counts as deleted. The last credential of an environment
// cannot be removed.
func (s *CredentialService) DeleteCredential(ctx context.Context, appID id.ApplicationID, envID id.EnvironmentID, clientID id.ClientID, actor string) error {
	env, err := s.envs.ByID(envID)
	if err != nil {
		return err
	}
	app, err := s.load(ctx, appID)
	if err != nil {
		return err
	}
	if err := app.CanRemoveCredential(env.ID, clientID); err != nil {
		return err
	}

	if err := s.gateway.DeleteClient(ctx, env.ID, clientID); err != nil {
		if !errors.Is(err, idm.ErrClientNotFound) {
			return s.upstream(err, "DeleteClient", env.ID, clientID.String())
		}
		s.logger.InfoContext(ctx, "remote client already removed",
			"application_id", app.ID,
			"environment", env.ID,
			"client_id", clientID,
		)
	}

	if _, err := s.update(ctx, app.WithoutCredential(env.ID, clientID, requestcontext.Now(ctx))); err != nil {
		return err
	}

	s.metrics.IncCredentialDeleted(env.ID.String())
	s.auditor.Log(ctx, audit.EventCredentialDeleted,
		"actor", actor,
		"application_id", app.ID.String(),
		"environment", env.ID.String(),
		"subject", clientID.String(),
	)
	return nil
}
