package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	arhandler "devportal/internal/accessrequest/handler"
	armetrics "devportal/internal/accessrequest/metrics"
	arservice "devportal/internal/accessrequest/service"
	apphandler "devportal/internal/application/handler"
	appmetrics "devportal/internal/application/metrics"
	appservice "devportal/internal/application/service"
	"devportal/internal/environment"
	"devportal/internal/notifications"
	"devportal/internal/platform/config"
	"devportal/internal/platform/health"
	"devportal/internal/platform/logger"
	"devportal/internal/scopes"
	"devportal/pkg/platform/audit"
	"devportal/pkg/platform/middleware/auth"
	"devportal/pkg/platform/middleware/request"
	"devportal/pkg/platform/tracer"
)

// main wires dependencies, exposes the HTTP router and keeps the server
// lifecycle small. Business logic lives in the internal service packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "devportal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envs, err := loadEnvironments(cfg)
	if err != nil {
		return err
	}
	log.Info("initializing devportal",
		"addr", cfg.Addr,
		"environments", len(envs.All()),
		"production", envs.Production().ID,
		"idm_in_memory", cfg.IDM.InMemory,
	)

	healthHandler := health.New(cfg.DeploymentEnv)

	st, err := newStores(ctx, cfg, log, healthHandler)
	if err != nil {
		return err
	}
	defer st.close()

	trc := tracer.NewOTel()
	gateway, err := newGateway(cfg, envs, trc, log, healthHandler)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(ctx, cfg, log, healthHandler)
	if err != nil {
		return err
	}
	notifier := notifications.New(publisher, cfg.Kafka.Topic,
		notifications.WithAsyncBuffer(1024),
		notifications.WithLogger(log),
	)
	auditor := audit.NewLogger(log, notifier)

	scopeMetrics := scopes.NewMetrics()
	fixer := scopes.NewFixer(gateway, envs,
		scopes.WithLogger(log),
		scopes.WithTracer(trc),
		scopes.WithMetrics(scopeMetrics),
		scopes.WithConcurrency(cfg.FixConcurrency),
	)
	minimiser := scopes.NewMinimiser(gateway,
		scopes.WithLogger(log),
		scopes.WithTracer(trc),
		scopes.WithMetrics(scopeMetrics),
	)

	requests := arservice.New(st.requests, st.apps, envs, fixer,
		arservice.WithLogger(log),
		arservice.WithAuditor(auditor),
		arservice.WithMetrics(armetrics.New()),
	)
	appOpts := []appservice.Option{
		appservice.WithLogger(log),
		appservice.WithAuditor(auditor),
		appservice.WithMetrics(appmetrics.New()),
	}
	apps := appservice.NewApplicationService(appservice.ApplicationDeps{
		Store:     st.apps,
		Teams:     st.teams,
		Gateway:   gateway,
		Envs:      envs,
		Fixer:     fixer,
		Minimiser: minimiser,
		Requests:  st.requests,
		Canceller: requests,
	}, appOpts...)
	creds := appservice.NewCredentialService(st.apps, gateway, envs, fixer, st.requests, appOpts...)

	router := newRouter(cfg, log, healthHandler, func(r chi.Router) {
		apphandler.New(apps, creds, log).Register(r)
		arhandler.New(requests, log).Register(r)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	notifier.Close()
	if err := publisher.Close(); err != nil {
		log.Error("closing kafka producer failed", "error", err)
	}
	log.Info("server stopped")
	return nil
}

func loadEnvironments(cfg config.Server) (*environment.Registry, error) {
	if cfg.EnvironmentsFile != "" {
		return environment.Load(cfg.EnvironmentsFile)
	}
	return environment.New(environment.Defaults(), "")
}

func newRouter(cfg config.Server, log *slog.Logger, healthHandler *health.Handler, mount func(chi.Router)) chi.Router {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Observe(log, request.NewMetrics()))
	r.Use(request.Recovery(log))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	validator := auth.NewHMACValidator(cfg.JWTSigningKey, cfg.JWTAudience)
	r.Group(func(r chi.Router) {
		r.Use(request.BodyLimit(cfg.MaxBodyBytes))
		r.Use(request.ContentTypeJSON)
		r.Use(request.Timeout(cfg.RequestTimeout))
		r.Use(auth.RequireActor(validator, log))
		mount(r)
	})
	return r
}
