package idm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"devportal/internal/idm"
	"devportal/internal/idm/mocks"
	id "devportal/pkg/domain"
)

func TestRouterDispatchesByEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	testGW := mocks.NewMockGateway(ctrl)
	prodGW := mocks.NewMockGateway(ctrl)
	router := idm.NewRouter(map[id.EnvironmentID]idm.Gateway{"test": testGW, "production": prodGW})
	ctx := context.Background()

	testGW.EXPECT().AddScope(gomock.Any(), id.EnvironmentID("test"), id.ClientID("c1"), "read:foo").Return(nil)
	prodGW.EXPECT().ListScopes(gomock.Any(), id.EnvironmentID("production"), id.ClientID("c2")).Return([]string{"read:foo"}, nil)
	prodGW.EXPECT().DeleteClient(gomock.Any(), id.EnvironmentID("production"), id.ClientID("c2")).Return(idm.ErrClientNotFound)

	require.NoError(t, router.AddScope(ctx, "test", "c1", "read:foo"))
	scopes, err := router.ListScopes(ctx, "production", "c2")
	require.NoError(t, err)
	assert.Equal(t, []string{"read:foo"}, scopes)
	assert.ErrorIs(t, router.DeleteClient(ctx, "production", "c2"), idm.ErrClientNotFound)
}

func TestRouterUnknownEnvironment(t *testing.T) {
	router := idm.NewRouter(nil)
	_, err := router.CreateClient(context.Background(), "staging", idm.ClientDescriptor{})
	assert.ErrorIs(t, err, idm.ErrUnknownEnvironment)
	_, err = router.FetchClient(context.Background(), "staging", "c1")
	assert.ErrorIs(t, err, idm.ErrUnknownEnvironment)
}
