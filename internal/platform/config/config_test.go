package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "devportal", cfg.Mongo.Database)
		assert.True(t, cfg.IDM.InMemory)
		assert.Equal(t, uint(3), cfg.IDM.MaxRetries)
		assert.Equal(t, 4, cfg.FixConcurrency)
		assert.Equal(t, "devportal.events", cfg.Kafka.Topic)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DEVPORTAL_ADDR", ":9090")
		t.Setenv("DEVPORTAL_MONGO_URL", "mongodb://localhost:27017")
		t.Setenv("DEVPORTAL_IDM_TIMEOUT", "2s")
		t.Setenv("DEVPORTAL_IDM_IN_MEMORY", "false")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URL)
		assert.Equal(t, 2*time.Second, cfg.IDM.Timeout)
		assert.False(t, cfg.IDM.InMemory)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("DEVPORTAL_REQUEST_TIMEOUT", "soon")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}
