package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"devportal/internal/accessrequest/metrics"
	"devportal/internal/accessrequest/models"
	"devportal/internal/accessrequest/service"
	arstore "devportal/internal/accessrequest/store"
	appmodels "devportal/internal/application/models"
	appstore "devportal/internal/application/store"
	"devportal/internal/environment"
	"devportal/internal/idm"
	"devportal/internal/idm/memory"
	"devportal/internal/scopes"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	requests *arstore.InMemory
	apps     *appstore.InMemory
	idm      *memory.Gateway
	metrics  *metrics.Metrics
	svc      *service.Service
	app      appmodels.Application
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithNow(context.Background(), s.now)
	s.requests = arstore.NewInMemory()
	s.apps = appstore.NewInMemory()
	s.idm = memory.New()
	envs, err := environment.New(environment.Defaults(), "")
	s.Require().NoError(err)
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.svc = service.New(s.requests, s.apps, envs, scopes.NewFixer(s.idm, envs), service.WithMetrics(s.metrics))
	s.app = s.seedApp("production", 2)
}

func (s *ServiceSuite) seedApp(env id.EnvironmentID, n int) appmodels.Application {
	appID := id.NewApplicationID()
	var creds []appmodels.Credential
	for range n {
		c, err := s.idm.CreateClient(s.ctx, env, idm.ClientDescriptor{ApplicationID: appID, Name: "payments"})
		s.Require().NoError(err)
		creds = append(creds, appmodels.NewHiddenCredential(env, c.ClientID, c.Secret, s.now))
	}
	app, err := appmodels.NewApplication(appID, "payments", nil, creds, s.now)
	s.Require().NoError(err)
	app, err = s.apps.Insert(s.ctx, app)
	s.Require().NoError(err)
	s.idm.ResetCalls()
	return app
}

func (s *ServiceSuite) submit(env id.EnvironmentID, granted ...string) models.AccessRequest {
	batch, err := s.svc.Submit(s.ctx, service.SubmitCommand{
		ApplicationID: s.app.ID,
		EnvironmentID: env,
		Apis: []service.ApiRequest{{
			ApiID:     id.ApiID(uuid.New()),
			ApiName:   "orders",
			Endpoints: []appmodels.Endpoint{{Method: "GET", Path: "/orders", Scopes: granted}},
		}},
		RequestedBy: "dev@x.com",
	})
	s.Require().NoError(err)
	s.Require().Len(batch, 1)
	return batch[0]
}

func (s *ServiceSuite) TestSubmitBatchSharesTimestamp() {
	batch, err := s.svc.Submit(s.ctx, service.SubmitCommand{
		ApplicationID: s.app.ID,
		EnvironmentID: "production",
		Apis: []service.ApiRequest{
			{ApiID: id.ApiID(uuid.New()), ApiName: "orders", Endpoints: []appmodels.Endpoint{{Method: "GET", Path: "/orders", Scopes: []string{"read:orders"}}}},
			{ApiID: id.ApiID(uuid.New()), ApiName: "stock", Endpoints: []appmodels.Endpoint{{Method: "GET", Path: "/stock", Scopes: []string{" read:stock", "read:stock"}}}},
		},
		SupportingInformation: "launch",
		RequestedBy:           "dev@x.com",
	})
	s.Require().NoError(err)
	s.Require().Len(batch, 2)
	for _, ar := range batch {
		s.Equal(models.StatusPending, ar.Status)
		s.Equal(s.now, ar.RequestedAt)
		s.Nil(ar.Decision)
		s.Nil(ar.Cancellation)
	}
	s.Equal([]string{"read:stock"}, batch[1].Scopes())

	listed, err := s.svc.List(s.ctx, models.Filter{ApplicationID: &s.app.ID})
	s.Require().NoError(err)
	s.Len(listed, 2)
	s.Equal(float64(2), testutil.ToFloat64(s.metrics.Submitted.WithLabelValues("production")))
}

func (s *ServiceSuite) TestSubmitValidation() {
	api := service.ApiRequest{ApiID: id.ApiID(uuid.New()), ApiName: "orders", Endpoints: []appmodels.Endpoint{{Method: "GET", Path: "/orders"}}}
	cases := map[string]struct {
		cmd  service.SubmitCommand
		code dErrors.Code
	}{
		"empty batch": {
			cmd:  service.SubmitCommand{ApplicationID: s.app.ID, EnvironmentID: "test", RequestedBy: "dev@x.com"},
			code: dErrors.CodeValidation,
		},
		"duplicate api": {
			cmd:  service.SubmitCommand{ApplicationID: s.app.ID, EnvironmentID: "test", Apis: []service.ApiRequest{api, api}, RequestedBy: "dev@x.com"},
			code: dErrors.CodeValidation,
		},
		"no endpoints": {
			cmd:  service.SubmitCommand{ApplicationID: s.app.ID, EnvironmentID: "test", Apis: []service.ApiRequest{{ApiID: api.ApiID, ApiName: "orders"}}, RequestedBy: "dev@x.com"},
			code: dErrors.CodeValidation,
		},
		"unknown environment": {
			cmd:  service.SubmitCommand{ApplicationID: s.app.ID, EnvironmentID: "staging", Apis: []service.ApiRequest{api}, RequestedBy: "dev@x.com"},
			code: dErrors.CodeNotFound,
		},
		"unknown application": {
			cmd:  service.SubmitCommand{ApplicationID: id.NewApplicationID(), EnvironmentID: "test", Apis: []service.ApiRequest{api}, RequestedBy: "dev@x.com"},
			code: dErrors.CodeApplicationNotFound,
		},
	}
	for name, tc := range cases {
		s.Run(name, func() {
			_, err := s.svc.Submit(s.ctx, tc.cmd)
			s.True(dErrors.HasCode(err, tc.code), err)
		})
	}
	all, err := s.svc.List(s.ctx, models.Filter{})
	s.Require().NoError(err)
	s.Empty(all)
}

// Example 3.
func (s *ServiceSuite) TestApproveGrantsScopesInEnvironment() {
	ar := s.submit("production", "read:foo")

	approved, err := s.svc.Approve(s.ctx, ar.ID, "approver@x.com")
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, approved.Status)
	s.Require().NotNil(approved.Decision)
	s.Equal("approver@x.com", approved.Decision.By)
	s.Equal(s.now, approved.Decision.At)

	for _, c := range s.app.CredentialsIn("production") {
		s.Contains(s.idm.Scopes("production", c.ClientID), "read:foo")
	}
	stored, err := s.svc.Get(s.ctx, ar.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, stored.Status)
}

func (s *ServiceSuite) TestApprovalStandsWhenReconciliationFails() {
	ar := s.submit("production", "read:foo")
	s.idm.FailOn(memory.OpAddScope, context.DeadlineExceeded)

	approved, err := s.svc.Approve(s.ctx, ar.ID, "approver@x.com")
	s.True(dErrors.HasCode(err, dErrors.CodeUpstream))
	s.Equal(models.StatusApproved, approved.Status)

	stored, err := s.svc.Get(s.ctx, ar.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, stored.Status)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.FixFailures.WithLabelValues("production")))
}

// Example 4.
func (s *ServiceSuite) TestRejectRequiresReason() {
	ar := s.submit("production", "read:foo")

	_, err := s.svc.Reject(s.ctx, ar.ID, "approver@x.com", "")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	stored, err := s.svc.Get(s.ctx, ar.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, stored.Status)

	rejected, err := s.svc.Reject(s.ctx, ar.ID, "approver@x.com", "not needed")
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, rejected.Status)
	s.Equal("not needed", rejected.Decision.Reason)
	s.Zero(s.idm.Calls(memory.OpAddScope))
}

func (s *ServiceSuite) TestTerminalStatesAreClosed() {
	approved := s.submit("production", "read:foo")
	_, err := s.svc.Approve(s.ctx, approved.ID, "approver@x.com")
	s.Require().NoError(err)
	rejected := s.submit("production", "read:bar")
	_, err = s.svc.Reject(s.ctx, rejected.ID, "approver@x.com", "no")
	s.Require().NoError(err)
	cancelled := s.submit("production", "read:baz")
	_, err = s.svc.Cancel(s.ctx, cancelled.ID, "dev@x.com")
	s.Require().NoError(err)

	for _, arID := range []id.AccessRequestID{approved.ID, rejected.ID, cancelled.ID} {
		before, err := s.svc.Get(s.ctx, arID)
		s.Require().NoError(err)

		_, err = s.svc.Approve(s.ctx, arID, "x@x.com")
		s.True(dErrors.HasCode(err, dErrors.CodeAccessRequestStatusInvalid))
		_, err = s.svc.Reject(s.ctx, arID, "x@x.com", "late")
		s.True(dErrors.HasCode(err, dErrors.CodeAccessRequestStatusInvalid))
		_, err = s.svc.Cancel(s.ctx, arID, "x@x.com")
		s.True(dErrors.HasCode(err, dErrors.CodeAccessRequestStatusInvalid))

		after, err := s.svc.Get(s.ctx, arID)
		s.Require().NoError(err)
		s.Equal(before, after)
	}
}

// lockstepStore holds each FindByID until two readers have loaded the request,
// so both transitions start from the same Pending copy.
type lockstepStore struct {
	*arstore.InMemory
	readers sync.WaitGroup
}

func (l *lockstepStore) FindByID(ctx context.Context, arID id.AccessRequestID) (models.AccessRequest, error) {
	ar, err := l.InMemory.FindByID(ctx, arID)
	l.readers.Done()
	l.readers.Wait()
	return ar, err
}

func (s *ServiceSuite) TestConcurrentTransitionsKeepFirstDecision() {
	ar := s.submit("production", "read:foo")
	store := &lockstepStore{InMemory: s.requests}
	store.readers.Add(2)
	envs, err := environment.New(environment.Defaults(), "")
	s.Require().NoError(err)
	svc := service.New(store, s.apps, envs, scopes.NewFixer(s.idm, envs))

	var approveErr, cancelErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, approveErr = svc.Approve(s.ctx, ar.ID, "approver@x.com")
	}()
	go func() {
		defer wg.Done()
		_, cancelErr = svc.Cancel(s.ctx, ar.ID, "dev@x.com")
	}()
	wg.Wait()

	stored, err := s.svc.Get(s.ctx, ar.ID)
	s.Require().NoError(err)
	switch stored.Status {
	case models.StatusApproved:
		s.NoError(approveErr)
		s.True(dErrors.HasCode(cancelErr, dErrors.CodeAccessRequestStatusInvalid))
		s.NotNil(stored.Decision)
		s.Nil(stored.Cancellation)
	case models.StatusCancelled:
		s.NoError(cancelErr)
		s.True(dErrors.HasCode(approveErr, dErrors.CodeAccessRequestStatusInvalid))
		s.Nil(stored.Decision)
		s.NotNil(stored.Cancellation)
		s.Zero(s.idm.Calls(memory.OpAddScope))
	default:
		s.Failf("unexpected status", "status %s", stored.Status)
	}
}

func (s *ServiceSuite) TestCancelPendingCascades() {
	first := s.submit("production", "read:foo")
	second := s.submit("test", "read:bar")
	done := s.submit("production", "read:baz")
	_, err := s.svc.Approve(s.ctx, done.ID, "approver@x.com")
	s.Require().NoError(err)

	n, err := s.svc.CancelPendingForApi(s.ctx, first.ApiID, "ops@x.com")
	s.Require().NoError(err)
	s.Equal(1, n)

	n, err = s.svc.CancelPendingForApplication(s.ctx, s.app.ID, "ops@x.com")
	s.Require().NoError(err)
	s.Equal(1, n)

	for arID, want := range map[id.AccessRequestID]models.Status{
		first.ID:  models.StatusCancelled,
		second.ID: models.StatusCancelled,
		done.ID:   models.StatusApproved,
	} {
		got, err := s.svc.Get(s.ctx, arID)
		s.Require().NoError(err)
		s.Equal(want, got.Status)
	}
	got, err := s.svc.Get(s.ctx, second.ID)
	s.Require().NoError(err)
	s.Equal("ops@x.com", got.Cancellation.By)
}

func (s *ServiceSuite) TestUnknownRequest() {
	_, err := s.svc.Approve(s.ctx, id.NewAccessRequestID(), "approver@x.com")
	s.True(dErrors.HasCode(err, dErrors.CodeAccessRequestNotFound))
	_, err = s.svc.Get(s.ctx, id.NewAccessRequestID())
	s.True(dErrors.IsNotFound(err))
}
