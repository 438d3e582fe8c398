package scopes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	armodels "devportal/internal/accessrequest/models"
	"devportal/internal/application/models"
	"devportal/internal/environment"
	"devportal/internal/scopes"
	"devportal/internal/scopes/mocks"
	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
)

func TestFixerStopsCredentialAtFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	envs := mocks.NewMockEnvironments(ctrl)
	ctx := context.Background()
	now := time.Now()

	app, err := models.NewApplication(id.NewApplicationID(), "payments", nil, []models.Credential{
		models.NewCredential("production", "c1", "secret-1", now),
	}, now)
	require.NoError(t, err)
	ars := []armodels.AccessRequest{{
		ApplicationID: app.ID,
		EnvironmentID: "production",
		Status:        armodels.StatusApproved,
		Endpoints:     []models.Endpoint{{Scopes: []string{"a:1", "b:2", "c:3"}}},
	}}

	errIDM := errors.New("idm down")
	envs.EXPECT().ByID(id.EnvironmentID("production")).Return(environment.Environment{ID: "production", ProductionLike: true}, nil)
	gw.EXPECT().ListScopes(gomock.Any(), id.EnvironmentID("production"), id.ClientID("c1")).Return([]string{"a:1"}, nil)
	// c:3 has no expectation: it must not be attempted once b:2 failed.
	gw.EXPECT().AddScope(gomock.Any(), id.EnvironmentID("production"), id.ClientID("c1"), "b:2").Return(errIDM)

	fixer := scopes.NewFixer(gw, envs)
	_, err = fixer.Fix(ctx, app, ars, scopes.EnvironmentTarget("production"))
	require.ErrorIs(t, err, errIDM)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstream))
}

func TestFixerListFailureIsUpstream(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	envs := mocks.NewMockEnvironments(ctrl)
	now := time.Now()

	app, err := models.NewApplication(id.NewApplicationID(), "payments", nil, []models.Credential{
		models.NewCredential("test", "c1", "secret-1", now),
	}, now)
	require.NoError(t, err)
	app = app.WithApi(models.Api{Endpoints: []models.Endpoint{{Scopes: []string{"read:foo"}}}}, now)

	envs.EXPECT().ByID(id.EnvironmentID("test")).Return(environment.Environment{ID: "test"}, nil)
	gw.EXPECT().ListScopes(gomock.Any(), id.EnvironmentID("test"), id.ClientID("c1")).Return(nil, errors.New("timeout"))

	_, err = scopes.NewFixer(gw, envs).Fix(context.Background(), app, nil, scopes.EnvironmentTarget("test"))
	var de *dErrors.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, dErrors.CodeUpstream, de.Code)
	assert.Equal(t, "ListScopes", de.Operation)
	assert.Equal(t, "c1", de.Target)
}
