package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"face-logbook/internal/config"
	"face-logbook/internal/messaging/kafka/producer"
	"face-logbook/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RunWorker hosts the daily reset scheduler, the outbox relay and the
// metrics endpoint until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := BuildApp(ctx, cfg, zap.L(), BuildOptions{WithRedis: true, WithKafka: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	schedOpts := []scheduler.Option{
		scheduler.WithClock(rt.Registry.Clock),
		scheduler.WithLogger(zap.L()),
	}
	if rt.Redis != nil {
		host, _ := os.Hostname()
		schedOpts = append(schedOpts, scheduler.WithLock(rt.Redis, host, cfg.ResetLockTTL))
	}
	daily := scheduler.NewDailyReset(rt.Registry.Attendance, schedOpts...)
	daily.Start(ctx)
	defer daily.Stop()

	var wg sync.WaitGroup
	if rt.Kafka != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			producer.ProcessOutboxEvents(ctx, rt.Registry.Outbox, rt.Kafka, zap.L(), cfg.OutboxPollInterval)
		}()
	} else {
		logger.Info("kafka_broker not set, transition events are not published")
	}

	var srv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(rt.Metrics, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		logger.Info("metrics server listening", zap.String("addr", cfg.MetricsAddr))
	}

	<-ctx.Done()
	logger.Info("worker shutting down")

	daily.Stop()
	wg.Wait()
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	return nil
}
