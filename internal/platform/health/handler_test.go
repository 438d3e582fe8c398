package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devportal/pkg/platform/circuit"
)

func serve(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.Register(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestReadiness(t *testing.T) {
	h := New("local")
	h.RegisterCheck("mongo", func(context.Context) error { return nil })
	assert.Equal(t, http.StatusOK, serve(t, h, "/health/ready").Code)

	h.RegisterCheck("kafka", func(context.Context) error { return errors.New("no brokers reachable") })
	w := serve(t, h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body ReadinessResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "up", body.Checks["mongo"])
	assert.Equal(t, "down: no brokers reachable", body.Checks["kafka"])
}

func TestReadinessChecksHonourTimeout(t *testing.T) {
	h := New("local")
	h.RegisterCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	w := serve(t, h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatusReportsCircuits(t *testing.T) {
	h := New("local")
	prod := circuit.New("idm-production", circuit.WithFailureThreshold(1))
	h.WatchBreaker(circuit.New("idm-test"))
	h.WatchBreaker(prod)

	var body StatusResponse
	w := serve(t, h, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "local", body.Deployment)

	prod.Record(errors.New("connection refused"))
	w = serve(t, h, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, map[string]string{"idm-test": "closed", "idm-production": "open"}, body.Circuits)

	assert.Equal(t, http.StatusOK, serve(t, h, "/health/ready").Code, "an open circuit does not fail readiness")
}

func TestLiveness(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(t, New("local"), "/health/live").Code)
}
