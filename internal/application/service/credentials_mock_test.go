package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"devportal/internal/application/models"
	"devportal/internal/application/service"
	"devportal/internal/application/service/mocks"
	"devportal/internal/environment"
	"devportal/internal/idm"
	"devportal/internal/idm/memory"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
	"devportal/pkg/platform/sentinel"
)

var errIDMDown = errors.New("idm unavailable")

func TestAddCredentialPersistFailureLeavesRemoteClient(t *testing.T) {
	for name, tc := range map[string]struct {
		storeErr error
		code     dErrors.Code
	}{
		"store outage":    {storeErr: errors.New("mongo down"), code: dErrors.CodeUpstream},
		"concurrent edit": {storeErr: sentinel.ErrConflict, code: dErrors.CodeConflict},
	} {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			st := mocks.NewMockStore(ctrl)
			fixer := mocks.NewMockScopeFixer(ctrl)
			finder := mocks.NewMockAccessRequestFinder(ctrl)
			gw := memory.New()
			envs, err := environment.New(environment.Defaults(), "")
			require.NoError(t, err)
			ctx := context.Background()

			app, err := models.NewApplication(id.NewApplicationID(), "payments", nil, nil, time.Now())
			require.NoError(t, err)

			var created id.ClientID
			st.EXPECT().FindByID(gomock.Any(), app.ID).Return(app, nil)
			st.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, next models.Application) (models.Application, error) {
					require.Len(t, next.Credentials, 1)
					created = next.Credentials[0].ClientID
					return models.Application{}, tc.storeErr
				})
			// Neither the fixer nor the access request store is reached.

			svc := service.NewCredentialService(st, gw, envs, fixer, finder)
			_, err = svc.AddCredential(ctx, app.ID, "test", "a@b.com")
			assert.True(t, dErrors.HasCode(err, tc.code))
			assert.True(t, gw.Exists("test", created), "no rollback of the remote client")
		})
	}
}

func TestAddCredentialStoreReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	gw := mocks.NewMockGateway(ctrl)
	envs, err := environment.New(environment.Defaults(), "")
	require.NoError(t, err)

	appID := id.NewApplicationID()
	st.EXPECT().FindByID(gomock.Any(), appID).Return(models.Application{}, errors.New("connection refused"))

	svc := service.NewCredentialService(st, gw, envs, mocks.NewMockScopeFixer(ctrl), mocks.NewMockAccessRequestFinder(ctrl))
	_, err = svc.AddCredential(context.Background(), appID, "test", "a@b.com")
	var de *dErrors.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, dErrors.CodeUpstream, de.Code)
	assert.Equal(t, "FindApplication", de.Operation)
}

func TestAddCredentialCreateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	gw := mocks.NewMockGateway(ctrl)
	envs, err := environment.New(environment.Defaults(), "")
	require.NoError(t, err)

	app, err := models.NewApplication(id.NewApplicationID(), "payments", nil, nil, time.Now())
	require.NoError(t, err)
	st.EXPECT().FindByID(gomock.Any(), app.ID).Return(app, nil)
	gw.EXPECT().CreateClient(gomock.Any(), id.EnvironmentID("test"), gomock.Any()).Return(idm.Client{}, errIDMDown)

	svc := service.NewCredentialService(st, gw, envs, mocks.NewMockScopeFixer(ctrl), mocks.NewMockAccessRequestFinder(ctrl))
	_, err = svc.AddCredential(context.Background(), app.ID, "test", "a@b.com")
	assert.ErrorIs(t, err, errIDMDown)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstream))
}
