// Package app wires configuration, logging, the persistence backend, the
// snapshot manager and the store into one ready-to-use unit.
package app

import (
	"context"
	"fmt"

	"github.com/marqs-app/marqs/internal/config"
	"github.com/marqs-app/marqs/internal/kv"
	filestore "github.com/marqs-app/marqs/internal/kv/file"
	"github.com/marqs-app/marqs/internal/kv/memory"
	redisstore "github.com/marqs-app/marqs/internal/kv/redis"
	"github.com/marqs-app/marqs/internal/logger"
	"github.com/marqs-app/marqs/internal/snapshot"
	"github.com/marqs-app/marqs/internal/store"
)

type App struct {
	Cfg       *config.Config
	Logger    logger.Logger
	KV        kv.Store
	Store     *store.Store
	Snapshots *snapshot.Manager

	scheduler   *snapshot.Scheduler
	redisClient *redisstore.Store
}

// New loads configuration, opens the configured backend and returns an app
// with its store loaded.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	a := &App{
		Cfg:    cfg,
		Logger: loggerClient,
	}

	switch cfg.Backend {
	case config.BackendFile:
		adapter, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open data dir %s: %w", cfg.DataDir, err)
		}
		a.KV = adapter

	case config.BackendRedis:
		client, err := redisstore.New(redisstore.Options{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.KV = client
		a.redisClient = client

	case config.BackendMemory:
		a.KV = memory.New()

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	a.Snapshots = snapshot.NewManager(a.KV, loggerClient, nil)
	a.Store = store.New(a.KV,
		store.WithLogger(loggerClient),
		store.WithSnapshotter(a.Snapshots),
	)
	if err := a.Store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	return a, nil
}

// StartScheduler begins periodic snapshot captures when an interval is
// configured. No-op otherwise.
func (a *App) StartScheduler(ctx context.Context) error {
	if a.Cfg.SnapshotInterval <= 0 {
		return nil
	}
	a.scheduler = snapshot.NewScheduler(a.Snapshots, a.Logger, a.Cfg.SnapshotInterval)
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start snapshot scheduler: %w", err)
	}
	a.Logger.Info("snapshot scheduler started",
		logger.Duration("interval", a.Cfg.SnapshotInterval))
	return nil
}

// Close releases backend resources.
func (a *App) Close() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis: %w", err)
		}
	}
	_ = a.Logger.Sync()
	return nil
}
