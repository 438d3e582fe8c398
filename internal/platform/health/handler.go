// Package health serves liveness, readiness and status probes for the portal.
package health

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"devportal/pkg/platform/circuit"
	"devportal/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc returns nil when the dependency is usable.
type CheckFunc func(ctx context.Context) error

// Breaker is the read side of a circuit breaker guarding an environment's gateway.
type Breaker interface {
	Name() string
	State() circuit.State
}

const checkTimeout = 2 * time.Second

type Handler struct {
	started    time.Time
	deployment string

	mu       sync.RWMutex
	checks   map[string]CheckFunc
	breakers []Breaker
}

func New(deployment string) *Handler {
	return &Handler{
		started:    time.Now(),
		deployment: deployment,
		checks:     make(map[string]CheckFunc),
	}
}

// RegisterCheck adds a dependency that must be up for the readiness probe to pass.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// WatchBreaker reports b in the status endpoint. An open circuit marks the
// service degraded but never fails readiness: other environments keep working.
func (h *Handler) WatchBreaker(b Breaker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.breakers = append(h.breakers, b)
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.handleStatus)
		r.Get("/live", h.handleLive)
		r.Get("/ready", h.handleReady)
	})
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type StatusResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Deployment    string            `json:"deployment"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Circuits      map[string]string `json:"circuits,omitempty"`
}

func (h *Handler) handleLive(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	results := h.runChecks(r.Context())

	resp := ReadinessResponse{Status: "ready", Checks: make(map[string]string, len(results))}
	code := http.StatusOK
	for name, err := range results {
		if err != nil {
			resp.Checks[name] = "down: " + err.Error()
			resp.Status = "not_ready"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}
	httputil.WriteJSON(w, code, resp)
}

func (h *Handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := StatusResponse{
		Status:        "healthy",
		Version:       Version,
		Deployment:    h.deployment,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}
	for _, b := range h.snapshotBreakers() {
		if resp.Circuits == nil {
			resp.Circuits = make(map[string]string)
		}
		state := b.State()
		resp.Circuits[b.Name()] = state.String()
		if state != circuit.StateClosed {
			resp.Status = "degraded"
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// runChecks executes every registered check concurrently, each with its own timeout.
func (h *Handler) runChecks(ctx context.Context) map[string]error {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	checks := make([]CheckFunc, len(names))
	sort.Strings(names)
	for i, name := range names {
		checks[i] = h.checks[name]
	}
	h.mu.RUnlock()

	errs := make([]error, len(checks))
	var g errgroup.Group
	for i, check := range checks {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()
			errs[i] = check(cctx)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]error, len(names))
	for i, name := range names {
		out[name] = errs[i]
	}
	return out
}

func (h *Handler) snapshotBreakers() []Breaker {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Breaker(nil), h.breakers...)
}
