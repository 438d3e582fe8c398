// Package service drives access requests through their lifecycle and
// reconciles scopes once a request is approved.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,ApplicationStore,ScopeFixer

import (
	"context"
	"errors"
	"log/slog"

	"devportal/internal/accessrequest/metrics"
	"devportal/internal/accessrequest/models"
	appmodels "devportal/internal/application/models"
	"devportal/internal/environment"
	"devportal/internal/scopes"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/audit"
	"devportal/pkg/platform/sentinel"
	"devportal/pkg/requestcontext"
)

// Store persists access requests.
// Error contract:
//   - FindByID and Update return sentinel.ErrNotFound for unknown ids
//   - Insert stores the whole batch or nothing
type Store interface {
	Find(ctx context.Context, filter models.Filter) ([]models.AccessRequest, error)
	FindByID(ctx context.Context, arID id.AccessRequestID) (models.AccessRequest, error)
	Insert(ctx context.Context, batch []models.AccessRequest) error
	Update(ctx context.Context, ar models.AccessRequest) error
}

// ApplicationStore returns sentinel.ErrNotFound for unknown applications.
type ApplicationStore interface {
	FindByID(ctx context.Context, appID id.ApplicationID) (appmodels.Application, error)
}

type ScopeFixer interface {
	Fix(ctx context.Context, app appmodels.Application, requests []models.AccessRequest, target scopes.Target) (scopes.Result, error)
}

type Environments interface {
	ByID(envID id.EnvironmentID) (environment.Environment, error)
}

type Service struct {
	store   Store
	apps    ApplicationStore
	envs    Environments
	fixer   ScopeFixer
	logger  *slog.Logger
	auditor *audit.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditor(auditor *audit.Logger) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, apps ApplicationStore, envs Environments, fixer ScopeFixer, opts ...Option) *Service {
	svc := &Service{
		store: store,
		apps:  apps,
		envs:  envs,
		fixer: fixer,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// ApiRequest is one API and the endpoints requested from it.
type ApiRequest struct {
	ApiID     id.ApiID
	ApiName   string
	Endpoints []appmodels.Endpoint
}

type SubmitCommand struct {
	ApplicationID         id.ApplicationID
	EnvironmentID         id.EnvironmentID
	Apis                  []ApiRequest
	SupportingInformation string
	RequestedBy           string
}

func (c SubmitCommand) validate() error {
	if len(c.Apis) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one api must be requested")
	}
	if c.RequestedBy == "" {
		return dErrors.New(dErrors.CodeValidation, "requester is required")
	}
	seen := make(map[id.ApiID]struct{}, len(c.Apis))
	for _, api := range c.Apis {
		if api.ApiID.IsNil() {
			return dErrors.New(dErrors.CodeValidation, "api id is required")
		}
		if api.ApiName == "" {
			return dErrors.New(dErrors.CodeValidation, "api name is required")
		}
		if len(api.Endpoints) == 0 {
			return dErrors.New(dErrors.CodeValidation, "api "+api.ApiName+" requests no endpoints")
		}
		if _, dup := seen[api.ApiID]; dup {
			return dErrors.New(dErrors.CodeValidation, "api "+api.ApiName+" requested twice")
		}
		seen[api.ApiID] = struct{}{}
	}
	return nil
}

// Submit creates one Pending request per API in the batch. Every request of
// the batch shares the submission timestamp.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) ([]models.AccessRequest, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	env, err := s.envs.ByID(cmd.EnvironmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.application(ctx, cmd.ApplicationID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	batch := make([]models.AccessRequest, 0, len(cmd.Apis))
	for _, api := range cmd.Apis {
		batch = append(batch, models.AccessRequest{
			ID:                    id.NewAccessRequestID(),
			ApplicationID:         cmd.ApplicationID,
			ApiID:                 api.ApiID,
			ApiName:               api.ApiName,
			EnvironmentID:         env.ID,
			Status:                models.StatusPending,
			Endpoints:             appmodels.NormalizeEndpoints(api.Endpoints),
			SupportingInformation: cmd.SupportingInformation,
			RequestedBy:           cmd.RequestedBy,
			RequestedAt:           now,
		})
	}
	if err := s.store.Insert(ctx, batch); err != nil {
		return nil, dErrors.Upstream(err, "InsertAccessRequests", env.ID.String(), cmd.ApplicationID.String())
	}

	s.metrics.IncSubmitted(env.ID.String(), len(batch))
	for _, ar := range batch {
		s.auditor.Log(ctx, audit.EventAccessRequestSubmitted,
			"actor", cmd.RequestedBy,
			"application_id", ar.ApplicationID.String(),
			"environment", ar.EnvironmentID.String(),
			"subject", ar.ID.String(),
		)
	}
	return batch, nil
}

func (s *Service) Get(ctx context.Context, arID id.AccessRequestID) (models.AccessRequest, error) {
	return s.load(ctx, arID)
}

// List returns the requests matching filter, oldest first.
func (s *Service) List(ctx context.Context, filter models.Filter) ([]models.AccessRequest, error) {
	ars, err := s.store.Find(ctx, filter)
	if err != nil {
		return nil, dErrors.Upstream(err, "FindAccessRequests", "", "")
	}
	return ars, nil
}

// Approve records the decision and then reconciles scopes for the request's
// environment. A reconciliation failure is returned as an upstream failure
// together with the approved request; the approval is not reverted.
func (s *Service) Approve(ctx context.Context, arID id.AccessRequestID, by string) (models.AccessRequest, error) {
	ar, err := s.load(ctx, arID)
	if err != nil {
		return models.AccessRequest{}, err
	}
	approved, err := ar.Approve(by, requestcontext.Now(ctx))
	if err != nil {
		return models.AccessRequest{}, err
	}
	if err := s.persist(ctx, approved); err != nil {
		return models.AccessRequest{}, err
	}
	s.metrics.IncTransition(string(models.StatusApproved))
	s.auditor.Log(ctx, audit.EventAccessRequestApproved,
		"actor", by,
		"application_id", approved.ApplicationID.String(),
		"environment", approved.EnvironmentID.String(),
		"subject", approved.ID.String(),
	)

	if err := s.reconcile(ctx, approved); err != nil {
		s.metrics.IncFixFailure(approved.EnvironmentID.String())
		s.logger.ErrorContext(ctx, "scope reconciliation after approval failed",
			"access_request_id", approved.ID,
			"application_id", approved.ApplicationID,
			"environment", approved.EnvironmentID,
			"error", err,
		)
		return approved, err
	}
	return approved, nil
}

func (s *Service) reconcile(ctx context.Context, approved models.AccessRequest) error {
	app, err := s.apps.FindByID(ctx, approved.ApplicationID)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "approved request for a missing application",
			"access_request_id", approved.ID,
			"application_id", approved.ApplicationID,
		)
		return nil
	}
	if err != nil {
		return dErrors.Upstream(err, "FindApplication", approved.EnvironmentID.String(), approved.ApplicationID.String())
	}
	ars, err := s.store.Find(ctx, models.Filter{ApplicationID: &app.ID})
	if err != nil {
		return dErrors.Upstream(err, "FindAccessRequests", approved.EnvironmentID.String(), app.ID.String())
	}
	_, err = s.fixer.Fix(ctx, app, ars, scopes.EnvironmentTarget(approved.EnvironmentID))
	return err
}

// Reject requires a reason. It is checked before the request is read.
func (s *Service) Reject(ctx context.Context, arID id.AccessRequestID, by, reason string) (models.AccessRequest, error) {
	if reason == "" {
		return models.AccessRequest{}, dErrors.New(dErrors.CodeValidation, "rejection reason is required")
	}
	ar, err := s.load(ctx, arID)
	if err != nil {
		return models.AccessRequest{}, err
	}
	rejected, err := ar.Reject(by, reason, requestcontext.Now(ctx))
	if err != nil {
		return models.AccessRequest{}, err
	}
	if err := s.persist(ctx, rejected); err != nil {
		return models.AccessRequest{}, err
	}
	s.metrics.IncTransition(string(models.StatusRejected))
	s.auditor.Log(ctx, audit.EventAccessRequestRejected,
		"actor", by,
		"application_id", rejected.ApplicationID.String(),
		"environment", rejected.EnvironmentID.String(),
		"subject", rejected.ID.String(),
		"reason", reason,
	)
	return rejected, nil
}

func (s *Service) Cancel(ctx context.Context, arID id.AccessRequestID, by string) (models.AccessRequest, error) {
	ar, err := s.load(ctx, arID)
	if err != nil {
		return models.AccessRequest{}, err
	}
	return s.cancel(ctx, ar, by)
}

func (s *Service) cancel(ctx context.Context, ar models.AccessRequest, by string) (models.AccessRequest, error) {
	cancelled, err := ar.Cancel(by, requestcontext.Now(ctx))
	if err != nil {
		return models.AccessRequest{}, err
	}
	if err := s.persist(ctx, cancelled); err != nil {
		return models.AccessRequest{}, err
	}
	s.metrics.IncTransition(string(models.StatusCancelled))
	s.auditor.Log(ctx, audit.EventAccessRequestCancelled,
		"actor", by,
		"application_id", cancelled.ApplicationID.String(),
		"environment", cancelled.EnvironmentID.String(),
		"subject", cancelled.ID.String(),
	)
	return cancelled, nil
}

// CancelPending cancels every Pending request matching filter and reports how
// many were cancelled. It stops at the first failure.
func (s *Service) CancelPending(ctx context.Context, filter models.Filter, by string) (int, error) {
	pending := models.StatusPending
	filter.Status = &pending
	ars, err := s.store.Find(ctx, filter)
	if err != nil {
		return 0, dErrors.Upstream(err, "FindAccessRequests", "", "")
	}
	for i, ar := range ars {
		if _, err := s.cancel(ctx, ar, by); err != nil {
			return i, err
		}
	}
	return len(ars), nil
}

func (s *Service) CancelPendingForApplication(ctx context.Context, appID id.ApplicationID, by string) (int, error) {
	return s.CancelPending(ctx, models.Filter{ApplicationID: &appID}, by)
}

func (s *Service) CancelPendingForApi(ctx context.Context, apiID id.ApiID, by string) (int, error) {
	return s.CancelPending(ctx, models.Filter{ApiID: &apiID}, by)
}

func (s *Service) load(ctx context.Context, arID id.AccessRequestID) (models.AccessRequest, error) {
	ar, err := s.store.FindByID(ctx, arID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.AccessRequest{}, dErrors.New(dErrors.CodeAccessRequestNotFound, "access request not found")
	}
	if err != nil {
		return models.AccessRequest{}, dErrors.Upstream(err, "FindAccessRequest", "", arID.String())
	}
	return ar, nil
}

func (s *Service) persist(ctx context.Context, ar models.AccessRequest) error {
	err := s.store.Update(ctx, ar)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeAccessRequestNotFound, "access request not found")
	}
	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.Wrap(err, dErrors.CodeAccessRequestStatusInvalid, "access request is no longer pending")
	}
	if err != nil {
		return dErrors.Upstream(err, "UpdateAccessRequest", ar.EnvironmentID.String(), ar.ID.String())
	}
	return nil
}

// application loads a live application for submission.
func (s *Service) application(ctx context.Context, appID id.ApplicationID) (appmodels.Application, error) {
	app, err := s.apps.FindByID(ctx, appID)
	if errors.Is(err, sentinel.ErrNotFound) || (err == nil && app.IsDeleted()) {
		return appmodels.Application{}, dErrors.New(dErrors.CodeApplicationNotFound, "application not found")
	}
	if err != nil {
		return appmodels.Application{}, dErrors.Upstream(err, "FindApplication", "", appID.String())
	}
	return app, nil
}
