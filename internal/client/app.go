package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-sync-client/internal/backoff"
	"github.com/MKhiriev/go-sync-client/internal/cache"
	"github.com/MKhiriev/go-sync-client/internal/config"
	"github.com/MKhiriev/go-sync-client/internal/handler"
	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/internal/metrics"
	"github.com/MKhiriev/go-sync-client/internal/restapi"
	"github.com/MKhiriev/go-sync-client/internal/server"
	"github.com/MKhiriev/go-sync-client/internal/state"
	"github.com/MKhiriev/go-sync-client/internal/store"
	"github.com/MKhiriev/go-sync-client/internal/syncclient"
	"github.com/MKhiriev/go-sync-client/internal/transport"
	"github.com/MKhiriev/go-sync-client/internal/utils"
	"github.com/MKhiriev/go-sync-client/internal/workers"
	"github.com/MKhiriev/go-sync-client/models"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	storages *store.ClientStorages
	state    *state.Store
	sync     *syncclient.Client
	workers  *workers.Workers
	server   server.Server

	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp wires every component of the process from cfg. The returned App
// owns the only sync connection; nothing is opened until Run.
func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	stateStore := state.NewStore(storages.ClientState, utils.NewUUIDGenerator(), log)
	cacheStore := cache.NewStore(log)

	factory := transport.NewWebsocketFactory(transport.Config{
		Origin:       cfg.Sync.Origin,
		Path:         cfg.Sync.Path,
		RequireToken: cfg.Sync.RequireToken,
	}, log)

	syncClient := syncclient.New(syncclient.Config{
		Token:         cfg.Sync.Token,
		AutoReconnect: cfg.Sync.AutoReconnect,
		Backoff: backoff.Config{
			BaseDelay:  cfg.Sync.BaseDelay,
			MaxRetries: cfg.Sync.MaxRetries,
			MaxDelay:   cfg.Sync.MaxDelay,
		},
		HeartbeatInterval: cfg.Sync.HeartbeatInterval,
	}, factory, cacheStore, stateStore, log, syncclient.WithMetrics(m))

	app := &App{
		storages:  storages,
		state:     stateStore,
		sync:      syncClient,
		workers:   workers.NewWorkers(),
		buildInfo: buildInfo,
		logger:    log,
	}

	if cfg.API.Address != "" {
		fetcher, err := restapi.NewFetcher(cfg.API, cacheStore, func() string {
			return syncClient.ConnectionStatus().Token
		}, m, log)
		if err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("create rest fetcher: %w", err)
		}
		app.workers = workers.NewWorkers(workers.NewStaleRefreshJob(fetcher, cfg.Workers.RefreshInterval, log))
	}

	if cfg.Status.HTTPAddress != "" {
		handlers, err := handler.NewHandlers(syncClient, registry, cfg.Status, log)
		if err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("create handlers: %w", err)
		}
		app.server, err = server.NewServer(handlers.HTTP.Init(), cfg.Status, log)
		if err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("create status server: %w", err)
		}
	}

	app.subscribe()
	return app, nil
}

// subscribe logs the lifecycle of the connection.
func (a *App) subscribe() {
	log := a.logger.ForComponent("app")

	_, _ = a.sync.On(models.EventConnected, func(models.Event) {
		log.Info().Msg("sync connection established")
	})
	_, _ = a.sync.On(models.EventReconnecting, func(ev models.Event) {
		log.Info().Dur("delay", ev.Delay).Int("attempt", ev.Attempt).Msg("sync connection lost, reconnecting")
	})
	_, _ = a.sync.On(models.EventDisconnected, func(ev models.Event) {
		if ev.Terminal() {
			log.Warn().Str("reason", ev.Reason).Msg("sync connection closed")
		}
	})
	_, _ = a.sync.On(models.EventError, func(ev models.Event) {
		log.Warn().Err(ev.Err).Msg("sync error")
	})
}

// Run restores the local state, opens the connection and blocks until the
// process receives SIGTERM, SIGINT or SIGQUIT.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	defer func() {
		if err := a.storages.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("error closing local storage")
		}
	}()

	a.logger.Info().
		Str("version", a.buildInfo.BuildVersion()).
		Str("commit", a.buildInfo.BuildCommit()).
		Msg("starting sync client")

	if err := a.state.Restore(ctx); err != nil {
		return fmt.Errorf("restore client state: %w", err)
	}

	if err := a.sync.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer a.sync.Disconnect()

	a.workers.Start(ctx)
	defer a.workers.Stop()

	serverErr := make(chan error, 1)
	if a.server != nil {
		go func() { serverErr <- a.server.RunServer() }()
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	if a.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := a.server.Shutdown(shutdownCtx); shutdownErr != nil {
			a.logger.Warn().Err(shutdownErr).Msg("error shutting down status server")
		}
	}

	a.logger.Info().Msg("sync client stopped")
	return err
}
