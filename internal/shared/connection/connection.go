// Package connection opens the worker's backing services, retrying while
// they come up.
package connection

import (
	"context"
	"fmt"
	"time"

	"face-logbook/internal/config"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const retryDelay = 5 * time.Second

func PostgresDSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
}

// ConnectGORMWithRetry opens Postgres and pings it. Attendance timestamps
// are written as naive wall-clock values, so the session time zone is left
// to the server.
func ConnectGORMWithRetry(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	log := logger.Named("connection.postgres")
	maxRetries := max(cfg.DBMaxRetries, 1)

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		db, err := openGORM(ctx, PostgresDSN(cfg))
		if err == nil {
			log.Info("connected to database", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
			return db, nil
		}
		lastErr = err
		log.Warn("database not ready", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		if err := wait(ctx, i, maxRetries); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

func openGORM(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func ConnectRedisWithRetry(ctx context.Context, addr string, maxRetries int, logger *zap.Logger) (*redis.Client, error) {
	log := logger.Named("connection.redis")
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	maxRetries = max(maxRetries, 1)

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		if lastErr = rdb.Ping(ctx).Err(); lastErr == nil {
			log.Info("connected to redis", zap.String("addr", addr))
			return rdb, nil
		}
		log.Warn("redis not ready", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(lastErr))
		if err := wait(ctx, i, maxRetries); err != nil {
			_ = rdb.Close()
			return nil, err
		}
	}
	_ = rdb.Close()
	return nil, fmt.Errorf("redis connection failed after %d retries: %w", maxRetries, lastErr)
}

// ConnectKafkaWithRetry dials broker until it answers and returns a writer
// that routes messages by key.
func ConnectKafkaWithRetry(ctx context.Context, broker string, maxRetries int, logger *zap.Logger) (*kafkago.Writer, error) {
	log := logger.Named("connection.kafka")
	maxRetries = max(maxRetries, 1)

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		conn, err := kafkago.DialContext(ctx, "tcp", broker)
		if err == nil {
			_ = conn.Close()
			log.Info("connected to kafka", zap.String("broker", broker))
			return &kafkago.Writer{
				Addr:                   kafkago.TCP(broker),
				Balancer:               &kafkago.Hash{},
				RequiredAcks:           kafkago.RequireAll,
				AllowAutoTopicCreation: true,
				BatchTimeout:           50 * time.Millisecond,
			}, nil
		}
		lastErr = err
		log.Warn("kafka not ready", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		if err := wait(ctx, i, maxRetries); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("kafka connection failed after %d retries: %w", maxRetries, lastErr)
}

func wait(ctx context.Context, attempt, maxRetries int) error {
	if attempt == maxRetries {
		return nil
	}
	t := time.NewTimer(retryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

