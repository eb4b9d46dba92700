package app

import (
	"database/sql"

	"face-logbook/internal/attendance"
	"face-logbook/internal/config"
	"face-logbook/internal/facematch"
	"face-logbook/internal/identity"
	"face-logbook/internal/messaging/kafka"
	"face-logbook/internal/metrics"
	"face-logbook/internal/recognition"
	"face-logbook/internal/shared/clock"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Registry holds the engine's repositories and services, wired once per
// process.
type Registry struct {
	Identities  identity.Repository
	Outbox      kafka.OutboxRepository
	Matcher     facematch.Service
	Attendance  attendance.Service
	Recognition recognition.Service
	Clock       clock.Clock
}

// registerModules builds the engine on top of an open database. The outbox
// is only written when publishing is enabled.
func registerModules(
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	recorder *metrics.Recorder,
	publish bool,
	logger *zap.Logger,
) (*Registry, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clk := clock.System(loc)

	// --- Repositories ---
	identityRepo := identity.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB, loc)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	opts := attendance.Options{
		Clock:          clk,
		Debounce:       cfg.Debounce(),
		ResetBatchSize: cfg.ResetBatchSize,
		Topic:          cfg.KafkaTopic,
		Metrics:        recorder,
	}
	if publish {
		opts.Outbox = outboxRepo
	}
	matcher := facematch.NewService(identityRepo, cfg.MatchThreshold, recorder, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, identityRepo, opts, logger)
	recognitionService := recognition.NewService(matcher, attendanceService, clk, logger)

	return &Registry{
		Identities:  identityRepo,
		Outbox:      outboxRepo,
		Matcher:     matcher,
		Attendance:  attendanceService,
		Recognition: recognitionService,
		Clock:       clk,
	}, nil
}
