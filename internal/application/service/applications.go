package service

import (
	"context"
	"errors"

	armodels "devportal/internal/accessrequest/models"
	"devportal/internal/application/models"
	"devportal/internal/idm"
	"devportal/internal/scopes"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/audit"
	"devportal/pkg/platform/sentinel"
	"devportal/pkg/requestcontext"
)

// ApplicationService registers, updates and deletes applications.
type ApplicationService struct {
	core
	teams     TeamStore
	gateway   Gateway
	minimiser ScopeMinimiser
	canceller AccessRequestCanceller
}

// ApplicationDeps groups the collaborators of ApplicationService.
type ApplicationDeps struct {
	Store     Store
	Teams     TeamStore
	Gateway   Gateway
	Envs      Environments
	Fixer     ScopeFixer
	Minimiser ScopeMinimiser
	Requests  AccessRequestFinder
	Canceller AccessRequestCanceller
}

func NewApplicationService(deps ApplicationDeps, opts ...Option) *ApplicationService {
	return &ApplicationService{
		core: core{
			store:    deps.Store,
			requests: deps.Requests,
			envs:     deps.Envs,
			fixer:    deps.Fixer,
			options:  newOptions(opts),
		},
		teams:     deps.Teams,
		gateway:   deps.Gateway,
		minimiser: deps.Minimiser,
		canceller: deps.Canceller,
	}
}

type RegisterCommand struct {
	Name      string
	TeamID    *id.TeamID
	CreatedBy string
}

// Register creates an application with one credential in every environment.
// Production-like credentials are stored hidden with only their fragment.
// The returned application carries the non-production secrets.
func (s *ApplicationService) Register(ctx context.Context, cmd RegisterCommand) (models.Application, error) {
	now := requestcontext.Now(ctx)
	appID := id.NewApplicationID()
	if _, err := models.NewApplication(appID, cmd.Name, cmd.TeamID, nil, now); err != nil {
		return models.Application{}, err
	}
	if cmd.TeamID != nil {
		if err := s.checkTeam(ctx, *cmd.TeamID); err != nil {
			return models.Application{}, err
		}
	}

	var creds []models.Credential
	for _, env := range s.envs.All() {
		client, err := s.gateway.CreateClient(ctx, env.ID, idm.ClientDescriptor{
			ApplicationID: appID,
			Name:          cmd.Name,
			Description:   "created by " + cmd.CreatedBy,
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "registration aborted, earlier clients remain",
				"application_id", appID,
				"environment", env.ID,
				"clients_created", len(creds),
				"error", err,
			)
			return models.Application{}, s.upstream(err, "CreateClient", env.ID, appID.String())
		}
		if env.ProductionLike {
			creds = append(creds, models.NewHiddenCredential(env.ID, client.ClientID, client.Secret, now))
		} else {
			creds = append(creds, models.NewCredential(env.ID, client.ClientID, client.Secret, now))
		}
	}

	app, err := models.NewApplication(appID, cmd.Name, cmd.TeamID, creds, now)
	if err != nil {
		return models.Application{}, err
	}
	inserted, err := s.store.Insert(ctx, app)
	if err != nil {
		return models.Application{}, s.persistError(err, "InsertApplication", appID)
	}

	s.metrics.IncRegistered()
	s.auditor.Log(ctx, audit.EventApplicationRegistered,
		"actor", cmd.CreatedBy,
		"application_id", appID.String(),
		"subject", cmd.Name,
	)
	return inserted, nil
}

// Get returns a live application with secrets stripped.
func (s *ApplicationService) Get(ctx context.Context, appID id.ApplicationID) (models.Application, error) {
	app, err := s.load(ctx, appID)
	if err != nil {
		return models.Application{}, err
	}
	return app.Redacted(), nil
}

func (s *ApplicationService) ChangeTeam(ctx context.Context, appID id.ApplicationID, teamID id.TeamID, actor string) (models.Application, error) {
	if err := s.checkTeam(ctx, teamID); err != nil {
		return models.Application{}, err
	}
	return s.setTeam(ctx, appID, &teamID, actor)
}

func (s *ApplicationService) RemoveTeam(ctx context.Context, appID id.ApplicationID, actor string) (models.Application, error) {
	return s.setTeam(ctx, appID, nil, actor)
}

func (s *ApplicationService) setTeam(ctx context.Context, appID id.ApplicationID, teamID *id.TeamID, actor string) (models.Application, error) {
	app, err := s.load(ctx, appID)
	if err != nil {
		return models.Application{}, err
	}
	updated, err := s.update(ctx, app.WithTeam(teamID, requestcontext.Now(ctx)))
	if err != nil {
		return models.Application{}, err
	}
	team := ""
	if teamID != nil {
		team = teamID.String()
	}
	s.auditor.Log(ctx, audit.EventApplicationTeamChanged,
		"actor", actor,
		"application_id", appID.String(),
		"subject", team,
	)
	return updated.Redacted(), nil
}

func (s *ApplicationService) checkTeam(ctx context.Context, teamID id.TeamID) error {
	_, err := s.teams.FindByID(ctx, teamID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeTeamNotFound, "team not found")
	}
	if err != nil {
		return dErrors.Upstream(err, "FindTeam", "", teamID.String())
	}
	return nil
}

// AddApi attaches api to the application directly and fixes scopes in every
// environment. Non-production credentials receive the endpoint scopes as a result.
func (s *ApplicationService) AddApi(ctx context.Context, appID id.ApplicationID, api models.Api, actor string) (models.Application, error) {
	if err := api.Validate(); err != nil {
		return models.Application{}, err
	}
	api.Endpoints = models.NormalizeEndpoints(api.Endpoints)

	app, err := s.load(ctx, appID)
	if err != nil {
		return models.Application{}, err
	}
	updated, err := s.update(ctx, app.WithApi(api, requestcontext.Now(ctx)))
	if err != nil {
		return models.Application{}, err
	}
	s.auditor.Log(ctx, audit.EventApiAdded,
		"actor", actor,
		"application_id", appID.String(),
		"subject", api.ID.String(),
	)
	if _, err := s.fixAll(ctx, updated); err != nil {
		return models.Application{}, err
	}
	return updated.Redacted(), nil
}

// RemoveApi detaches apiID and cancels the application's pending requests for it.
// Remote scopes are left alone; MinimiseScopes removes them.
func (s *ApplicationService) RemoveApi(ctx context.Context, appID id.ApplicationID, apiID id.ApiID, actor string) (models.Application, error) {
	app, err := s.load(ctx, appID)
	if err != nil {
		return models.Application{}, err
	}
	if !app.HasApi(apiID) {
		return models.Application{}, dErrors.New(dErrors.CodeNotFound, "api is not attached to the application")
	}
	updated, err := s.update(ctx, app.WithoutApi(apiID, requestcontext.Now(ctx)))
	if err != nil {
		return models.Application{}, err
	}
	if _, err := s.canceller.CancelPending(ctx, armodels.Filter{ApplicationID: &appID, ApiID: &apiID}, actor); err != nil {
		return models.Application{}, err
	}
	s.auditor.Log(ctx, audit.EventApiRemoved,
		"actor", actor,
		"application_id", appID.String(),
		"subject", apiID.String(),
	)
	return updated.Redacted(), nil
}

// Delete removes every remote client, cancels pending access requests, then
// soft-deletes the application when it has access request history and
// hard-deletes it otherwise.
func (s *ApplicationService) Delete(ctx context.Context, appID id.ApplicationID, actor string) error {
	app, err := s.load(ctx, appID)
	if err != nil {
		return err
	}

	for _, c := range app.Credentials {
		err := s.gateway.DeleteClient(ctx, c.EnvironmentID, c.ClientID)
		if err != nil && !errors.Is(err, idm.ErrClientNotFound) {
			return s.upstream(err, "DeleteClient", c.EnvironmentID, c.ClientID.String())
		}
	}

	if _, err := s.canceller.CancelPending(ctx, armodels.Filter{ApplicationID: &appID}, actor); err != nil {
		return err
	}
	history, err := s.accessRequestsOf(ctx, appID)
	if err != nil {
		return err
	}

	mode := "hard"
	if len(history) > 0 {
		mode = "soft"
		if _, err := s.update(ctx, app.MarkDeleted(actor, requestcontext.Now(ctx))); err != nil {
			return err
		}
	} else if err := s.store.Delete(ctx, appID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return s.persistError(err, "DeleteApplication", appID)
	}

	s.metrics.IncDeleted(mode)
	s.auditor.Log(ctx, audit.EventApplicationDeleted,
		"actor", actor,
		"application_id", appID.String(),
		"mode", mode,
	)
	return nil
}

// FixScopes reconciles every environment of the application. It stops at the
// first environment that fails.
func (s *ApplicationService) FixScopes(ctx context.Context, appID id.ApplicationID, actor string) ([]scopes.Result, error) {
	app, err := s.load(ctx, appID)
	if err != nil {
		return nil, err
	}
	results, err := s.fixAll(ctx, app)
	if err != nil {
		return results, err
	}
	added := 0
	for _, r := range results {
		added += r.Total()
	}
	s.auditor.Log(ctx, audit.EventScopesFixed,
		"actor", actor,
		"application_id", appID.String(),
		"scopes_added", added,
	)
	return results, nil
}

// MinimiseScopes removes remote scopes not backed by the application's Apis.
func (s *ApplicationService) MinimiseScopes(ctx context.Context, appID id.ApplicationID, envID id.EnvironmentID, actor string) (scopes.Result, error) {
	env, err := s.envs.ByID(envID)
	if err != nil {
		return scopes.Result{}, err
	}
	app, err := s.load(ctx, appID)
	if err != nil {
		return scopes.Result{}, err
	}
	result, err := s.minimiser.Minimise(ctx, app, env.ID)
	if err != nil {
		return result, err
	}
	s.auditor.Log(ctx, audit.EventScopesMinimised,
		"actor", actor,
		"application_id", appID.String(),
		"environment", env.ID.String(),
		"scopes_removed", result.Total(),
	)
	return result, nil
}

func (s *ApplicationService) fixAll(ctx context.Context, app models.Application) ([]scopes.Result, error) {
	ars, err := s.accessRequestsOf(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	var results []scopes.Result
	for _, env := range s.envs.All() {
		result, err := s.fixer.Fix(ctx, app, ars, scopes.EnvironmentTarget(env.ID))
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
