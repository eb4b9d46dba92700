// Package app wires configuration, storage and services into the worker and
// CLI processes.
package app

import (
	"context"
	"database/sql"
	"errors"

	"face-logbook/internal/config"
	"face-logbook/internal/metrics"
	"face-logbook/internal/shared/connection"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Runtime is an opened set of backing services plus the registry built on
// them. Redis and Kafka are nil when not configured.
type Runtime struct {
	Config   *config.Config
	GormDB   *gorm.DB
	DB       *sql.DB
	Redis    *redis.Client
	Kafka    *kafkago.Writer
	Metrics  *prometheus.Registry
	Registry *Registry
	Logger   *zap.Logger
}

type BuildOptions struct {
	// WithRedis connects redis when RedisAddr is set.
	WithRedis bool
	// WithKafka connects the broker when KafkaBroker is set.
	WithKafka bool
}

// NewLogger returns the zap logger for env.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func BuildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts BuildOptions) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Logger: logger, Metrics: prometheus.NewRegistry()}

	gormDB, err := connection.ConnectGORMWithRetry(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	rt.GormDB = gormDB
	if rt.DB, err = gormDB.DB(); err != nil {
		return nil, err
	}

	if opts.WithRedis && cfg.RedisAddr != "" {
		rt.Redis, err = connection.ConnectRedisWithRetry(ctx, cfg.RedisAddr, cfg.DBMaxRetries, logger)
		if err != nil {
			rt.Close()
			return nil, err
		}
	}

	if opts.WithKafka && cfg.KafkaBroker != "" {
		rt.Kafka, err = connection.ConnectKafkaWithRetry(ctx, cfg.KafkaBroker, cfg.DBMaxRetries, logger)
		if err != nil {
			rt.Close()
			return nil, err
		}
	}

	rt.Metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(rt.Metrics)

	rt.Registry, err = registerModules(cfg, rt.DB, gormDB, recorder, cfg.KafkaBroker != "", logger)
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) Close() error {
	var errs []error
	if rt.Kafka != nil {
		errs = append(errs, rt.Kafka.Close())
	}
	if rt.Redis != nil {
		errs = append(errs, rt.Redis.Close())
	}
	if rt.DB != nil {
		errs = append(errs, rt.DB.Close())
	}
	return errors.Join(errs...)
}
