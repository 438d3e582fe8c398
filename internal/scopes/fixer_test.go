package scopes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	armodels "devportal/internal/accessrequest/models"
	"devportal/internal/application/models"
	"devportal/internal/environment"
	"devportal/internal/idm"
	"devportal/internal/idm/memory"
	"devportal/internal/scopes"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/tracer"
)

type FixerSuite struct {
	suite.Suite
	ctx     context.Context
	idm     *memory.Gateway
	envs    *environment.Registry
	traces  *tracer.Recorder
	metrics *scopes.Metrics
	fixer   *scopes.Fixer
	now     time.Time
}

func TestFixerSuite(t *testing.T) {
	suite.Run(t, new(FixerSuite))
}

func (s *FixerSuite) SetupTest() {
	var err error
	s.ctx = context.Background()
	s.idm = memory.New()
	s.envs, err = environment.New(environment.Defaults(), "")
	s.Require().NoError(err)
	s.traces = tracer.NewRecorder()
	s.metrics = scopes.NewMetricsWith(prometheus.NewRegistry())
	s.fixer = scopes.NewFixer(s.idm, s.envs, scopes.WithTracer(s.traces), scopes.WithMetrics(s.metrics))
	s.now = time.Now()
}

// appWith provisions n credentials per environment on the in-memory IDM.
func (s *FixerSuite) appWith(n int, envs ...id.EnvironmentID) models.Application {
	var creds []models.Credential
	for _, env := range envs {
		for range n {
			c, err := s.idm.CreateClient(s.ctx, env, idm.ClientDescriptor{Name: "payments"})
			s.Require().NoError(err)
			creds = append(creds, models.NewCredential(env, c.ClientID, c.Secret, s.now))
		}
	}
	app, err := models.NewApplication(id.NewApplicationID(), "payments", nil, creds, s.now)
	s.Require().NoError(err)
	return app
}

func (s *FixerSuite) request(app models.Application, env id.EnvironmentID, status armodels.Status, granted ...string) armodels.AccessRequest {
	return armodels.AccessRequest{
		ID:            id.NewAccessRequestID(),
		ApplicationID: app.ID,
		ApiID:         id.ApiID(uuid.New()),
		ApiName:       "orders",
		EnvironmentID: env,
		Status:        status,
		Endpoints:     []models.Endpoint{{Method: "GET", Path: "/orders", Scopes: granted}},
		RequestedAt:   s.now,
	}
}

func (s *FixerSuite) TestConvergesEveryCredential() {
	app := s.appWith(3, "production")
	ars := []armodels.AccessRequest{s.request(app, "production", armodels.StatusApproved, "read:foo", "write:foo")}

	result, err := s.fixer.Fix(s.ctx, app, ars, scopes.EnvironmentTarget("production"))
	s.Require().NoError(err)
	s.Equal(6, result.Total())

	for _, c := range app.CredentialsIn("production") {
		s.Subset(s.idm.Scopes("production", c.ClientID), []string{"read:foo", "write:foo"})
	}
	s.Len(s.traces.Spans(tracer.SpanFixCredential), 3)
	s.Equal(6.0, testutil.ToFloat64(s.metrics.ScopesAdded.WithLabelValues("production")))
}

func (s *FixerSuite) TestSecondRunIssuesNoAdditions() {
	app := s.appWith(2, "production")
	ars := []armodels.AccessRequest{s.request(app, "production", armodels.StatusApproved, "read:foo")}

	_, err := s.fixer.Fix(s.ctx, app, ars, scopes.EnvironmentTarget("production"))
	s.Require().NoError(err)
	first := s.idm.Scopes("production", app.CredentialsIn("production")[0].ClientID)
	s.idm.ResetCalls()

	result, err := s.fixer.Fix(s.ctx, app, ars, scopes.EnvironmentTarget("production"))
	s.Require().NoError(err)
	s.Zero(result.Total())
	s.Zero(s.idm.Calls(memory.OpAddScope))
	s.Equal(first, s.idm.Scopes("production", app.CredentialsIn("production")[0].ClientID))
}

func (s *FixerSuite) TestRemoteScopesAreNeverRemoved() {
	app := s.appWith(1, "production")
	clientID := app.CredentialsIn("production")[0].ClientID
	s.Require().NoError(s.idm.AddScope(s.ctx, "production", clientID, "legacy:scope"))

	ars := []armodels.AccessRequest{s.request(app, "production", armodels.StatusApproved, "read:foo")}
	_, err := s.fixer.Fix(s.ctx, app, ars, scopes.EnvironmentTarget("production"))
	s.Require().NoError(err)
	s.Equal([]string{"legacy:scope", "read:foo"}, s.idm.Scopes("production", clientID))
	s.Zero(s.idm.Calls(memory.OpRemoveScope))
}

func (s *FixerSuite) TestOnlyApprovedRequestsForTheEnvironmentCount() {
	app := s.appWith(1, "production", "test")
	other := s.appWith(1, "production")
	ars := []armodels.AccessRequest{
		s.request(app, "production", armodels.StatusApproved, "read:foo"),
		s.request(app, "production", armodels.StatusPending, "read:pending"),
		s.request(app, "production", armodels.StatusRejected, "read:rejected"),
		s.request(app, "test", armodels.StatusApproved, "read:test"),
		s.request(other, "production", armodels.StatusApproved, "read:other"),
	}

	_, err := s.fixer.Fix(s.ctx, app, ars, scopes.EnvironmentTarget("production"))
	s.Require().NoError(err)
	s.Equal([]string{"read:foo"}, s.idm.Scopes("production", app.CredentialsIn("production")[0].ClientID))
	s.Empty(s.idm.Scopes("test", app.CredentialsIn("test")[0].ClientID))
}

func (s *FixerSuite) TestCredentialTargetTouchesOneCredential() {
	app := s.appWith(2, "production")
	creds := app.CredentialsIn("production")
	ars := []armodels.AccessRequest{s.request(app, "production", armodels.StatusApproved, "read:foo")}

	result, err := s.fixer.Fix(s.ctx, app, ars, scopes.CredentialTarget("production", creds[1].ClientID))
	s.Require().NoError(err)
	s.Equal(1, result.Total())
	s.Empty(s.idm.Scopes("production", creds[0].ClientID))
	s.Equal([]string{"read:foo"}, s.idm.Scopes("production", creds[1].ClientID))

	_, err = s.fixer.Fix(s.ctx, app, ars, scopes.CredentialTarget("production", "unknown"))
	s.True(dErrors.HasCode(err, dErrors.CodeCredentialNotFound))
}

func (s *FixerSuite) TestNonProductionAddsApiScopes() {
	app := s.appWith(1, "test", "production")
	app = app.WithApi(models.Api{
		ID:        id.ApiID(uuid.New()),
		Name:      "inventory",
		Endpoints: []models.Endpoint{{Method: "GET", Path: "/stock", Scopes: []string{"read:stock"}}},
	}, s.now)

	_, err := s.fixer.Fix(s.ctx, app, nil, scopes.EnvironmentTarget("test"))
	s.Require().NoError(err)
	s.Equal([]string{"read:stock"}, s.idm.Scopes("test", app.CredentialsIn("test")[0].ClientID))

	_, err = s.fixer.Fix(s.ctx, app, nil, scopes.EnvironmentTarget("production"))
	s.Require().NoError(err)
	s.Empty(s.idm.Scopes("production", app.CredentialsIn("production")[0].ClientID))
}

func (s *FixerSuite) TestPartialFailureSurfacesAndRerunConverges() {
	app := s.appWith(1, "production")
	clientID := app.CredentialsIn("production")[0].ClientID
	ars := []armodels.AccessRequest{s.request(app, "production", armodels.StatusApproved, "a:1", "b:2", "c:3")}

	errIDM := errors.New("idm 503")
	adds := 0
	s.idm.FailWith(func(op string, _ id.EnvironmentID, _ id.ClientID) error {
		if op != memory.OpAddScope {
			return nil
		}
		adds++
		if adds == 2 {
			return errIDM
		}
		return nil
	})

	result, err := s.fixer.Fix(s.ctx, app, ars, scopes.EnvironmentTarget("production"))
	s.Require().Error(err)
	s.ErrorIs(err, errIDM)
	s.True(dErrors.HasCode(err, dErrors.CodeUpstream))
	var de *dErrors.Error
	s.Require().ErrorAs(err, &de)
	s.Equal("AddScope", de.Operation)
	s.Equal("production", de.Environment)
	s.Equal([]string{"a:1"}, result.Changed[clientID])
	s.Equal([]string{"a:1"}, s.idm.Scopes("production", clientID), "no rollback")

	s.idm.FailWith(nil)
	_, err = s.fixer.Fix(s.ctx, app, ars, scopes.EnvironmentTarget("production"))
	s.Require().NoError(err)
	s.Equal([]string{"a:1", "b:2", "c:3"}, s.idm.Scopes("production", clientID))
}

func (s *FixerSuite) TestUnknownEnvironment() {
	app := s.appWith(1, "test")
	_, err := s.fixer.Fix(s.ctx, app, nil, scopes.EnvironmentTarget("staging"))
	s.True(dErrors.IsNotFound(err))
	s.Zero(s.idm.Calls(memory.OpListScopes))
}

func TestRequired(t *testing.T) {
	appID := id.NewApplicationID()
	app := models.Application{ID: appID, Apis: []models.Api{{
		Endpoints: []models.Endpoint{{Scopes: []string{"z:api", "a:api"}}},
	}}}
	ars := []armodels.AccessRequest{{
		ApplicationID: appID,
		EnvironmentID: "test",
		Status:        armodels.StatusApproved,
		Endpoints:     []models.Endpoint{{Scopes: []string{"m:ar", "a:api"}}},
	}}

	assert.Equal(t, []string{"a:api", "m:ar", "z:api"}, scopes.Required(app, ars, environment.Environment{ID: "test"}))
	assert.Empty(t, scopes.Required(app, ars, environment.Environment{ID: "production", ProductionLike: true}))
	// Direct api scopes only count outside production-like environments; a:api still
	// arrives through the approved request.
	require.Equal(t, []string{"a:api", "m:ar"}, scopes.Required(app, ars, environment.Environment{ID: "test", ProductionLike: true}))
}
