package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	arservice "devportal/internal/accessrequest/service"
	arstore "devportal/internal/accessrequest/store"
	appservice "devportal/internal/application/service"
	appstore "devportal/internal/application/store"
	"devportal/internal/environment"
	"devportal/internal/idm"
	"devportal/internal/idm/httpclient"
	"devportal/internal/idm/memory"
	"devportal/internal/platform/config"
	"devportal/internal/platform/database"
	"devportal/internal/platform/health"
	"devportal/internal/platform/kafka/producer"
	id "devportal/pkg/domain"
	"devportal/pkg/platform/circuit"
	"devportal/pkg/platform/tracer"
)

type stores struct {
	apps     appservice.Store
	teams    appservice.TeamStore
	requests arservice.Store
	close    func()
}

// newStores uses MongoDB when a URL is configured and in-memory stores otherwise.
func newStores(ctx context.Context, cfg config.Server, log *slog.Logger, healthHandler *health.Handler) (stores, error) {
	if cfg.Mongo.URL == "" {
		log.Warn("no mongo url configured, using in-memory stores")
		return stores{
			apps:     appstore.NewInMemory(),
			teams:    appstore.NewTeamDirectory(),
			requests: arstore.NewInMemory(),
			close:    func() {},
		}, nil
	}

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.Mongo.URL
	dbCfg.Database = cfg.Mongo.Database
	client, err := database.New(ctx, dbCfg)
	if err != nil {
		return stores{}, err
	}
	requests := arstore.NewMongo(client.Database())
	if err := requests.EnsureIndexes(ctx); err != nil {
		_ = client.Close(context.Background())
		return stores{}, err
	}
	healthHandler.RegisterCheck("mongo", client.Health)

	return stores{
		apps:     appstore.NewMongo(client.Database()),
		teams:    appstore.NewMongoTeams(client.Database()),
		requests: requests,
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(ctx); err != nil {
				log.Error("closing mongo failed", "error", err)
			}
		},
	}, nil
}

// newGateway builds one REST client per environment behind a router, or a
// single in-process gateway for local development.
func newGateway(cfg config.Server, envs *environment.Registry, trc tracer.Tracer, log *slog.Logger, healthHandler *health.Handler) (idm.Gateway, error) {
	if cfg.IDM.InMemory {
		log.Warn("using in-memory identity gateway")
		return memory.New(), nil
	}

	gateways := make(map[id.EnvironmentID]idm.Gateway)
	for _, env := range envs.All() {
		breaker := circuit.New("idm-"+env.ID.String(),
			circuit.WithFailureThreshold(cfg.IDM.BreakerThreshold),
			circuit.WithCooldown(cfg.IDM.BreakerCooldown),
			circuit.WithStateChange(func(name string, from, to circuit.State) {
				log.Warn("idm circuit state changed", "breaker", name, "from", from.String(), "to", to.String())
			}),
		)
		healthHandler.WatchBreaker(breaker)
		client, err := httpclient.New(httpclient.Config{
			Environment:  env.ID,
			BaseURL:      env.IDM.BaseURL,
			TokenURL:     env.IDM.TokenURL,
			ClientID:     env.IDM.ClientID,
			ClientSecret: env.IDM.ClientSecret,
			Timeout:      cfg.IDM.Timeout,
			MaxRetries:   cfg.IDM.MaxRetries,
		},
			httpclient.WithBreaker(breaker),
			httpclient.WithTracer(trc),
			httpclient.WithLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("environment %s: %w", env.ID, err)
		}
		gateways[env.ID] = client
	}
	return idm.NewRouter(gateways), nil
}

func newPublisher(ctx context.Context, cfg config.Server, log *slog.Logger, healthHandler *health.Handler) (producer.Publisher, error) {
	if cfg.Kafka.Brokers == "" {
		log.Info("no kafka brokers configured, notifications are discarded")
		return producer.NewNoopProducer(), nil
	}
	p, err := producer.New(producer.Config{
		Brokers:         cfg.Kafka.Brokers,
		ClientID:        "devportal",
		Acks:            cfg.Kafka.Acks,
		Retries:         3,
		DeliveryTimeout: 30 * time.Second,
	}, log)
	if err != nil {
		return nil, err
	}
	if err := p.EnsureTopic(ctx, cfg.Kafka.Topic, cfg.Kafka.Partitions); err != nil {
		_ = p.Close()
		return nil, err
	}
	healthHandler.RegisterCheck("kafka", func(ctx context.Context) error {
		if !p.Healthy(ctx) {
			return errors.New("brokers unreachable")
		}
		return nil
	})
	return p, nil
}
