package environment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "devportal/pkg/domain"
	dErrors "devportal/pkg/domain-errors"
)

func TestDefaults(t *testing.T) {
	r, err := New(Defaults(), "")
	require.NoError(t, err)

	var ids []id.EnvironmentID
	for _, env := range r.All() {
		ids = append(ids, env.ID)
	}
	assert.Equal(t, []id.EnvironmentID{"test", "preprod", "production"}, ids)
	assert.Equal(t, id.EnvironmentID("production"), r.Production().ID)
	require.Len(t, r.NonProduction(), 1)
	assert.Equal(t, id.EnvironmentID("test"), r.NonProduction()[0].ID)

	target, ok := r.PromotionTarget("preprod")
	require.True(t, ok)
	assert.Equal(t, id.EnvironmentID("production"), target.ID)
	_, ok = r.PromotionTarget("production")
	assert.False(t, ok)
}

func TestByID(t *testing.T) {
	r, err := New(Defaults(), "")
	require.NoError(t, err)

	env, err := r.ByID("preprod")
	require.NoError(t, err)
	assert.True(t, env.ProductionLike)

	_, err = r.ByID("staging")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestAllIsACopy(t *testing.T) {
	r, err := New(Defaults(), "")
	require.NoError(t, err)

	all := r.All()
	all[0].ID = "mutated"
	assert.Equal(t, id.EnvironmentID("test"), r.All()[0].ID)
}

func TestNewValidation(t *testing.T) {
	cases := map[string][]Environment{
		"empty":              nil,
		"duplicate":          {{ID: "test", Rank: 1}, {ID: "test", Rank: 2, ProductionLike: true}},
		"no production-like": {{ID: "test", Rank: 1}},
		"unknown promotion":  {{ID: "test", Rank: 1, PromoteTo: "nowhere"}, {ID: "prod", Rank: 2, ProductionLike: true}},
		"promotion downhill": {{ID: "test", Rank: 3, PromoteTo: "prod"}, {ID: "prod", Rank: 2, ProductionLike: true}},
	}
	for name, envs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(envs, "")
			assert.Error(t, err)
		})
	}

	t.Run("explicit production must be production-like", func(t *testing.T) {
		_, err := New(Defaults(), "test")
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environments.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
production: prod
environments:
  - id: prod
    rank: 2
    production_like: true
    idm:
      base_url: https://idm.prod.internal
  - id: sandbox
    rank: 1
    promote_to: prod
    idm:
      base_url: https://idm.sandbox.internal
`), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, id.EnvironmentID("sandbox"), r.All()[0].ID)
	assert.Equal(t, "https://idm.prod.internal", r.Production().IDM.BaseURL)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
