package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	armodels "devportal/internal/accessrequest/models"
	arstore "devportal/internal/accessrequest/store"
	"devportal/internal/application/metrics"
	"devportal/internal/application/models"
	"devportal/internal/application/service"
	"devportal/internal/application/store"
	"devportal/internal/environment"
	"devportal/internal/idm"
	"devportal/internal/idm/memory"
	"devportal/internal/scopes"
	id "devportal/pkg/domain"
	"devportal/pkg/requestcontext"
)

// storeCanceller cancels pending requests directly in the store and records each call.
type storeCanceller struct {
	store   *arstore.InMemory
	filters []armodels.Filter
}

func (c *storeCanceller) CancelPending(ctx context.Context, filter armodels.Filter, by string) (int, error) {
	c.filters = append(c.filters, filter)
	pending := armodels.StatusPending
	filter.Status = &pending
	ars, err := c.store.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	for _, ar := range ars {
		cancelled, err := ar.Cancel(by, requestcontext.Now(ctx))
		if err != nil {
			return 0, err
		}
		if err := c.store.Update(ctx, cancelled); err != nil {
			return 0, err
		}
	}
	return len(ars), nil
}

type serviceSuite struct {
	suite.Suite
	ctx       context.Context
	now       time.Time
	apps      *store.InMemory
	teams     *store.TeamDirectory
	requests  *arstore.InMemory
	idm       *memory.Gateway
	envs      *environment.Registry
	canceller *storeCanceller
	creds     *service.CredentialService
	svc       *service.ApplicationService
	team      models.Team
}

func (s *serviceSuite) SetupTest() {
	var err error
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithNow(context.Background(), s.now)
	s.apps = store.NewInMemory()
	s.team = models.Team{ID: id.TeamID(uuid.New()), Name: "payments-team"}
	s.teams = store.NewTeamDirectory(s.team)
	s.requests = arstore.NewInMemory()
	s.idm = memory.New()
	s.envs, err = environment.New(environment.Defaults(), "")
	s.Require().NoError(err)
	s.canceller = &storeCanceller{store: s.requests}

	fixer := scopes.NewFixer(s.idm, s.envs)
	m := metrics.NewWith(prometheus.NewRegistry())
	s.creds = service.NewCredentialService(s.apps, s.idm, s.envs, fixer, s.requests, service.WithMetrics(m))
	s.svc = service.NewApplicationService(service.ApplicationDeps{
		Store:     s.apps,
		Teams:     s.teams,
		Gateway:   s.idm,
		Envs:      s.envs,
		Fixer:     fixer,
		Minimiser: scopes.NewMinimiser(s.idm),
		Requests:  s.requests,
		Canceller: s.canceller,
	}, service.WithMetrics(m))
}

// seed stores an application holding n credentials in each listed environment,
// provisioned on the in-memory IDM. Production-like ones are stored hidden.
func (s *serviceSuite) seed(n int, envs ...id.EnvironmentID) models.Application {
	appID := id.NewApplicationID()
	var creds []models.Credential
	for _, envID := range envs {
		env, err := s.envs.ByID(envID)
		s.Require().NoError(err)
		for i := range n {
			c, err := s.idm.CreateClient(s.ctx, envID, idm.ClientDescriptor{ApplicationID: appID, Name: "payments"})
			s.Require().NoError(err)
			at := s.now.Add(time.Duration(i) * time.Minute)
			if env.ProductionLike {
				creds = append(creds, models.NewHiddenCredential(envID, c.ClientID, c.Secret, at))
			} else {
				creds = append(creds, models.NewCredential(envID, c.ClientID, c.Secret, at))
			}
		}
	}
	app, err := models.NewApplication(appID, "payments", nil, creds, s.now)
	s.Require().NoError(err)
	inserted, err := s.apps.Insert(s.ctx, app)
	s.Require().NoError(err)
	s.idm.ResetCalls()
	return inserted
}

func (s *serviceSuite) stored(appID id.ApplicationID) models.Application {
	app, err := s.apps.FindByID(s.ctx, appID)
	s.Require().NoError(err)
	return app
}

func (s *serviceSuite) approved(appID id.ApplicationID, env id.EnvironmentID, granted ...string) armodels.AccessRequest {
	ar := armodels.AccessRequest{
		ID:            id.NewAccessRequestID(),
		ApplicationID: appID,
		ApiID:         id.ApiID(uuid.New()),
		ApiName:       "orders",
		EnvironmentID: env,
		Status:        armodels.StatusApproved,
		Endpoints:     []models.Endpoint{{Method: "GET", Path: "/orders", Scopes: granted}},
		RequestedBy:   "dev@x.com",
		RequestedAt:   s.now,
		Decision:      &armodels.Decision{At: s.now, By: "approver@x.com"},
	}
	s.Require().NoError(s.requests.Insert(s.ctx, []armodels.AccessRequest{ar}))
	return ar
}

func (s *serviceSuite) pending(appID id.ApplicationID, apiID id.ApiID, env id.EnvironmentID) armodels.AccessRequest {
	ar := armodels.AccessRequest{
		ID:            id.NewAccessRequestID(),
		ApplicationID: appID,
		ApiID:         apiID,
		ApiName:       "orders",
		EnvironmentID: env,
		Status:        armodels.StatusPending,
		Endpoints:     []models.Endpoint{{Method: "GET", Path: "/orders", Scopes: []string{"read:orders"}}},
		RequestedBy:   "dev@x.com",
		RequestedAt:   s.now,
	}
	s.Require().NoError(s.requests.Insert(s.ctx, []armodels.AccessRequest{ar}))
	return ar
}
