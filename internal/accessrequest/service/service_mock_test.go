package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"devportal/internal/accessrequest/models"
	"devportal/internal/accessrequest/service"
	"devportal/internal/accessrequest/service/mocks"
	appmodels "devportal/internal/application/models"
	"devportal/internal/environment"
	"devportal/internal/scopes"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/sentinel"
	"devportal/pkg/requestcontext"
)

var errStoreDown = errors.New("store unavailable")

type mockDeps struct {
	store *mocks.MockStore
	apps  *mocks.MockApplicationStore
	fixer *mocks.MockScopeFixer
	svc   *service.Service
}

func newMockDeps(t *testing.T) mockDeps {
	ctrl := gomock.NewController(t)
	envs, err := environment.New(environment.Defaults(), "")
	require.NoError(t, err)
	d := mockDeps{
		store: mocks.NewMockStore(ctrl),
		apps:  mocks.NewMockApplicationStore(ctrl),
		fixer: mocks.NewMockScopeFixer(ctrl),
	}
	d.svc = service.New(d.store, d.apps, envs, d.fixer)
	return d
}

func pendingRequest(appID id.ApplicationID) models.AccessRequest {
	return models.AccessRequest{
		ID:            id.NewAccessRequestID(),
		ApplicationID: appID,
		ApiID:         id.ApiID(uuid.New()),
		ApiName:       "orders",
		EnvironmentID: "production",
		Status:        models.StatusPending,
		Endpoints:     []appmodels.Endpoint{{Method: "GET", Path: "/orders", Scopes: []string{"read:foo"}}},
		RequestedBy:   "dev@x.com",
	}
}

func TestApproveReconcilesWithEveryRequestOfTheApplication(t *testing.T) {
	d := newMockDeps(t)
	ctx := requestcontext.WithNow(context.Background(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	app := appmodels.Application{ID: id.NewApplicationID(), Name: "payments"}
	ar := pendingRequest(app.ID)
	history := []models.AccessRequest{ar, pendingRequest(app.ID)}

	d.store.EXPECT().FindByID(gomock.Any(), ar.ID).Return(ar, nil)
	d.store.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, got models.AccessRequest) error {
		assert.Equal(t, models.StatusApproved, got.Status)
		return nil
	})
	d.apps.EXPECT().FindByID(gomock.Any(), app.ID).Return(app, nil)
	d.store.EXPECT().Find(gomock.Any(), models.Filter{ApplicationID: &app.ID}).Return(history, nil)
	d.fixer.EXPECT().Fix(gomock.Any(), app, history, scopes.EnvironmentTarget("production")).Return(scopes.Result{}, nil)

	_, err := d.svc.Approve(ctx, ar.ID, "approver@x.com")
	require.NoError(t, err)
}

func TestApproveSkipsReconciliationForMissingApplication(t *testing.T) {
	d := newMockDeps(t)
	ar := pendingRequest(id.NewApplicationID())

	d.store.EXPECT().FindByID(gomock.Any(), ar.ID).Return(ar, nil)
	d.store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	d.apps.EXPECT().FindByID(gomock.Any(), ar.ApplicationID).Return(appmodels.Application{}, sentinel.ErrNotFound)

	approved, err := d.svc.Approve(context.Background(), ar.ID, "approver@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
}

func TestStoreFailures(t *testing.T) {
	t.Run("read failure is upstream", func(t *testing.T) {
		d := newMockDeps(t)
		arID := id.NewAccessRequestID()
		d.store.EXPECT().FindByID(gomock.Any(), arID).Return(models.AccessRequest{}, errStoreDown)

		_, err := d.svc.Cancel(context.Background(), arID, "dev@x.com")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstream))
		assert.ErrorIs(t, err, errStoreDown)
	})

	t.Run("failed decision write skips reconciliation", func(t *testing.T) {
		d := newMockDeps(t)
		ar := pendingRequest(id.NewApplicationID())
		d.store.EXPECT().FindByID(gomock.Any(), ar.ID).Return(ar, nil)
		d.store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errStoreDown)

		_, err := d.svc.Approve(context.Background(), ar.ID, "approver@x.com")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstream))
	})

	t.Run("cascade stops at the first failed cancel", func(t *testing.T) {
		d := newMockDeps(t)
		appID := id.NewApplicationID()
		pending := []models.AccessRequest{pendingRequest(appID), pendingRequest(appID)}
		d.store.EXPECT().Find(gomock.Any(), gomock.Any()).Return(pending, nil)
		gomock.InOrder(
			d.store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
			d.store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errStoreDown),
		)

		n, err := d.svc.CancelPendingForApplication(context.Background(), appID, "ops@x.com")
		assert.Equal(t, 1, n)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstream))
	})

	t.Run("insert failure is upstream", func(t *testing.T) {
		d := newMockDeps(t)
		app := appmodels.Application{ID: id.NewApplicationID(), Name: "payments"}
		d.apps.EXPECT().FindByID(gomock.Any(), app.ID).Return(app, nil)
		d.store.EXPECT().Insert(gomock.Any(), gomock.Len(1)).Return(errStoreDown)

		_, err := d.svc.Submit(context.Background(), service.SubmitCommand{
			ApplicationID: app.ID,
			EnvironmentID: "test",
			Apis: []service.ApiRequest{{
				ApiID:     id.ApiID(uuid.New()),
				ApiName:   "orders",
				Endpoints: []appmodels.Endpoint{{Method: "GET", Path: "/orders"}},
			}},
			RequestedBy: "dev@x.com",
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstream))
	})
}
