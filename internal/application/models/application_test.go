package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func appWith(t *testing.T, env id.EnvironmentID, n int) Application {
	t.Helper()
	creds := make([]Credential, 0, n)
	for i := range n {
		creds = append(creds, NewCredential(env, id.ClientID(fmt.Sprintf("client-%d", i)), "secret-value-0000", now))
	}
	app, err := NewApplication(id.NewApplicationID(), "payments", nil, creds, now)
	require.NoError(t, err)
	return app
}

func TestNewApplication(t *testing.T) {
	_, err := NewApplication(id.NewApplicationID(), "", nil, nil, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	app := appWith(t, "test", 1)
	assert.True(t, app.IsActiveIn("test"))
	assert.False(t, app.IsActiveIn("production"))
	assert.Equal(t, now, app.LastUpdated)
}

func TestCredentialCeiling(t *testing.T) {
	for n := 0; n <= MaxCredentialsPerEnvironment; n++ {
		app := appWith(t, "test", n)
		err := app.CanAddCredential("test")
		if n == MaxCredentialsPerEnvironment {
			assert.True(t, dErrors.HasCode(err, dErrors.CodeCredentialLimitExceeded), "n=%d", n)
		} else {
			assert.NoError(t, err, "n=%d", n)
		}
		assert.NoError(t, app.CanAddCredential("production"), "other environments are independent")
	}
}

func TestCanRemoveCredential(t *testing.T) {
	t.Run("unknown credential", func(t *testing.T) {
		app := appWith(t, "test", 2)
		err := app.CanRemoveCredential("test", "nope")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeCredentialNotFound))
	})

	t.Run("credential in a different environment", func(t *testing.T) {
		app := appWith(t, "test", 2)
		err := app.CanRemoveCredential("production", "client-0")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeCredentialNotFound))
	})

	t.Run("last credential", func(t *testing.T) {
		app := appWith(t, "test", 1)
		err := app.CanRemoveCredential("test", "client-0")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeCredentialLimitExceeded))
	})

	t.Run("allowed", func(t *testing.T) {
		app := appWith(t, "test", 2)
		assert.NoError(t, app.CanRemoveCredential("test", "client-1"))
	})
}

func TestCopyOnWrite(t *testing.T) {
	app := appWith(t, "test", 1)
	later := now.Add(time.Hour)

	added := app.WithCredential(NewCredential("test", "client-new", "abcdefgh", later), later)
	assert.Len(t, app.Credentials, 1, "receiver must not change")
	assert.Len(t, added.Credentials, 2)
	assert.Equal(t, later, added.LastUpdated)

	removed := added.WithoutCredential("test", "client-0", later)
	assert.Len(t, added.Credentials, 2)
	require.Len(t, removed.Credentials, 1)
	assert.Equal(t, id.ClientID("client-new"), removed.Credentials[0].ClientID)

	replaced := added.WithCredentialReplaced(added.Credentials[0].WithoutSecret(), later)
	assert.NotEmpty(t, added.Credentials[0].Secret)
	assert.Empty(t, replaced.Credentials[0].Secret)
}

func TestPrimaryCredentialIsOldest(t *testing.T) {
	app := appWith(t, "production", 0).
		WithCredential(NewHiddenCredential("production", "first", "zzzz1234", now), now).
		WithCredential(NewCredential("production", "second", "yyyy5678", now), now)

	primary, ok := app.PrimaryCredential("production")
	require.True(t, ok)
	assert.Equal(t, id.ClientID("first"), primary.ClientID)
	assert.True(t, primary.Hidden)
	assert.Empty(t, primary.Secret)
	assert.Equal(t, "1234", primary.SecretFragment)

	_, ok = app.PrimaryCredential("test")
	assert.False(t, ok)
}

func TestApis(t *testing.T) {
	apiID := id.ApiID(uuid.New())
	app := appWith(t, "test", 1).WithApi(Api{
		ID:   apiID,
		Name: "orders",
		Endpoints: []Endpoint{
			{Method: "GET", Path: "/orders", Scopes: []string{"read:orders"}},
			{Method: "POST", Path: "/orders", Scopes: []string{"read:orders", "write:orders"}},
		},
	}, now)

	assert.True(t, app.HasApi(apiID))
	assert.Equal(t, map[string]struct{}{"read:orders": {}, "write:orders": {}}, app.ApiScopes())

	app = app.WithApi(Api{ID: apiID, Name: "orders-v2"}, now)
	require.Len(t, app.Apis, 1, "re-adding replaces")
	assert.Equal(t, "orders-v2", app.Apis[0].Name)

	assert.False(t, app.WithoutApi(apiID, now).HasApi(apiID))
}

func TestMarkDeletedAndRedacted(t *testing.T) {
	app := appWith(t, "test", 2)

	redacted := app.Redacted()
	for _, c := range redacted.Credentials {
		assert.Empty(t, c.Secret)
		assert.Equal(t, "0000", c.SecretFragment)
	}
	assert.NotEmpty(t, app.Credentials[0].Secret)

	deleted := app.MarkDeleted("a@b.com", now)
	assert.True(t, deleted.IsDeleted())
	assert.Equal(t, "a@b.com", deleted.Deleted.By)
	assert.Empty(t, deleted.Credentials)
	assert.False(t, app.IsDeleted())
}

func TestCredentialRevealed(t *testing.T) {
	hidden := NewHiddenCredential("production", "c", "old-secret-aaaa", now)
	revealed := hidden.Revealed("new-secret-bbbb")
	assert.False(t, revealed.Hidden)
	assert.Equal(t, "new-secret-bbbb", revealed.Secret)
	assert.Equal(t, "bbbb", revealed.SecretFragment)
	assert.True(t, hidden.Hidden)
}
