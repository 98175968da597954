package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-lifesync/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-lifesync/internal/adapters/gateway/rest"
	adapterHTTP "github.com/comitanigiacomo/kanso-lifesync/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-lifesync/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-lifesync/internal/config"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/workers"
)

// app is the wired core: one store over the configured gateways, with the
// dispatcher that runs its remote calls.
type app struct {
	cfg        *config.Config
	store      *services.Store
	stats      *services.StatsService
	dispatcher *workers.Dispatcher
	redis      *redis.Client
	checks     map[string]adapterHTTP.HealthCheck
	closers    []func() error
	startedAt  time.Time
}

func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{
		cfg:       cfg,
		checks:    map[string]adapterHTTP.HealthCheck{},
		startedAt: time.Now(),
	}

	gw, err := a.gateways(ctx)
	if err != nil {
		a.shutdown()
		return nil, err
	}

	a.dispatcher = workers.NewDispatcher(cfg.Dispatch.Workers, cfg.Dispatch.Queue)
	a.dispatcher.Start(ctx)

	a.store = services.NewStore(gw, a.dispatcher, services.WithDailyGoal(a.cfg.DailyGoal))
	a.stats = services.NewStatsService(a.store)
	return a, nil
}

func (a *app) gateways(ctx context.Context) (domain.Gateways, error) {
	var gw domain.Gateways

	switch a.cfg.Gateway {
	case config.GatewaySQL:
		log.Printf("Connecting to %s database...", a.cfg.DB.Driver)
		db, err := repository.Connect(a.cfg.DB.Driver, a.cfg.DB.DSN())
		if err != nil {
			return gw, err
		}
		a.closers = append(a.closers, db.Close)
		a.checks["database"] = db.PingContext

		if gw, err = repository.NewSQLGateways(ctx, db); err != nil {
			return gw, err
		}
	case config.GatewayREST:
		client := rest.NewClient(a.cfg.REST.BaseURL, rest.WithToken(a.cfg.REST.Token))
		a.checks["remote"] = client.Health
		gw = rest.NewGateways(client)
	default:
		gw = repository.NewMemoryGateways()
	}

	switch a.cfg.Cache.Kind {
	case config.CacheRedis:
		rdb, err := cache.NewRedisClient(a.cfg.Redis.Host, a.cfg.Redis.Port, a.cfg.Redis.Password, a.cfg.Redis.DB)
		if err != nil {
			return gw, err
		}
		a.redis = rdb
		a.closers = append(a.closers, rdb.Close)
		a.checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		gw = repository.WithCache(gw, cache.NewRedisSnapshots(rdb, "kanso:"), a.cfg.Cache.TTL)
	case config.CacheDisk:
		snaps, err := cache.NewDiskSnapshots(a.cfg.Cache.Dir)
		if err != nil {
			return gw, err
		}
		gw = repository.WithCache(gw, snaps, a.cfg.Cache.TTL)
	}

	return gw, nil
}

// tokenService is nil when no JWT secret is configured, which leaves the
// local API open.
func (a *app) tokenService() *services.TokenService {
	if a.cfg.JWT.Secret == "" {
		return nil
	}
	return services.NewTokenService(a.cfg.JWT.Secret, a.cfg.JWT.Issuer, a.cfg.JWT.TTL)
}

func (a *app) routerDeps() adapterHTTP.RouterDependencies {
	deps := adapterHTTP.RouterDependencies{
		Store:        a.store,
		Stats:        a.stats,
		TokenService: a.tokenService(),
		RateLimit:    a.cfg.RateLimit,
		Checks:       a.checks,
		StartTime:    a.startedAt,
	}
	if a.redis != nil {
		deps.Redis = a.redis
	}
	return deps
}

// flush waits for every queued remote call to finish.
func (a *app) flush() {
	a.dispatcher.Wait()
}

// Close discards late responses, drains the dispatcher and releases the
// connections.
func (a *app) Close() {
	a.store.Close()
	a.dispatcher.Stop()
	a.shutdown()
}

func (a *app) shutdown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("close: %v", err)
		}
	}
	a.closers = nil
}

func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return openApp(ctx, cfg)
}
