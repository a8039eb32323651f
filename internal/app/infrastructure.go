package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prperemyshlev/task-manager/internal/config"
	"github.com/prperemyshlev/task-manager/pkg/database"
	"github.com/prperemyshlev/task-manager/pkg/observability"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const serviceName = "task-manager"

// Infrastructure owns the process-wide connections and telemetry
type Infrastructure interface {
	Postgres() *database.Postgres
	Redis() *database.Redis
	Logger() *zap.Logger
	MetricsHandler() http.Handler

	Shutdown(ctx context.Context) error
}

type infrastructure struct {
	postgres       *database.Postgres
	redis          *database.Redis
	logger         *zap.Logger
	metricsHandler http.Handler
	meterProvider  *metric.MeterProvider
}

var _ Infrastructure = &infrastructure{}

// NewInfrastructure connects to PostgreSQL and Redis, applies migrations when
// enabled and installs the logger and meter provider. Partially opened resources
// are released on failure.
func NewInfrastructure(ctx context.Context, cfg config.Config) (*infrastructure, error) {
	i := &infrastructure{}

	logger, err := observability.InitLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	i.logger = logger

	if cfg.Postgres.AutoMigrate {
		if err := database.Migrate(cfg.Postgres.URL()); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("Database migrations applied")
	}

	postgres, err := database.NewPostgres(ctx, cfg.Postgres.DSN(), database.PoolOptions{
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	i.postgres = postgres

	redis, err := database.NewRedis(ctx, database.RedisOptions{
		Addr:        cfg.Redis.Address(),
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		_ = i.postgres.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	i.redis = redis

	meterProvider, metricsHandler, err := observability.InitTelemetry(serviceName)
	if err != nil {
		_ = i.postgres.Close()
		_ = i.redis.Close()
		return nil, err
	}
	i.meterProvider = meterProvider
	i.metricsHandler = metricsHandler

	return i, nil
}

func (i *infrastructure) Postgres() *database.Postgres {
	return i.postgres
}

func (i *infrastructure) Redis() *database.Redis {
	return i.redis
}

func (i *infrastructure) Logger() *zap.Logger {
	return i.logger
}

func (i *infrastructure) MetricsHandler() http.Handler {
	return i.metricsHandler
}

func (i *infrastructure) Shutdown(ctx context.Context) error {
	errs := make(chan error, 3)

	go func() { errs <- i.postgres.Close() }()
	go func() { errs <- i.redis.Close() }()
	go func() { errs <- observability.Shutdown(ctx, i.meterProvider) }()

	err := errors.Join(<-errs, <-errs, <-errs)
	_ = i.logger.Sync()
	return err
}
