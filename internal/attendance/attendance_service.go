package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "face-logbook/internal/attendance/errors"
	"face-logbook/internal/events"
	"face-logbook/internal/identity"
	"face-logbook/internal/messaging/kafka"
	"face-logbook/internal/metrics"
	"face-logbook/internal/shared/apperror"
	"face-logbook/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const defaultResetBatchSize = 200

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// ProcessDetection applies one detection of identityID at now to the
	// day's record. A zero now means the service clock.
	ProcessDetection(ctx context.Context, identityID string, now time.Time) (TransitionResult, error)
	// ResetAll sets every roster identity to absent for the civil day of
	// date (zero means today) and returns how many identities it processed.
	ResetAll(ctx context.Context, date time.Time) (int, error)
	GetByDate(ctx context.Context, date time.Time) (DailyAttendanceResponse, error)
	GetHistory(ctx context.Context, identityID string) (HistoryResponse, error)
	GetRosterStatus(ctx context.Context, date time.Time, groupID string) (RosterStatusResponse, error)
}

type Options struct {
	Clock          clock.Clock
	Debounce       time.Duration
	ResetBatchSize int
	Outbox         kafka.OutboxRepository
	Topic          string
	Metrics        *metrics.Recorder
}

type service struct {
	db         *sql.DB
	repo       Repository
	identities identity.Repository
	outbox     kafka.OutboxRepository
	topic      string
	clock      clock.Clock
	debounce   time.Duration
	batchSize  int
	sf         *singleflight.Group
	metrics    *metrics.Recorder
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, identities identity.Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	c := opts.Clock
	if c == nil {
		c = clock.System(time.UTC)
	}
	batch := opts.ResetBatchSize
	if batch <= 0 {
		batch = defaultResetBatchSize
	}
	topic := opts.Topic
	if topic == "" {
		topic = events.AttendanceTopic
	}
	return &service{
		db:         db,
		repo:       repo,
		identities: identities,
		outbox:     opts.Outbox,
		topic:      topic,
		clock:      c,
		debounce:   opts.Debounce,
		batchSize:  batch,
		sf:         &singleflight.Group{},
		metrics:    opts.Metrics,
		logger:     l,
	}
}

func (s *service) ProcessDetection(ctx context.Context, identityID string, now time.Time) (TransitionResult, error) {
	if identityID == "" {
		return TransitionResult{}, attendanceerrors.ErrInvalidIdentityID
	}

	loc := s.clock.Location()
	if now.IsZero() {
		now = s.clock.Now()
	}
	now = clock.In(now, loc)
	today := clock.DateOf(now, loc)

	if _, err := s.identities.FindByID(ctx, identityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("detection for identity not in roster", zap.String("identity_id", identityID))
			s.metrics.ObserveOutcome(string(OutcomeNotFound))
			return TransitionResult{Outcome: OutcomeNotFound}, nil
		}
		s.logger.Error("lookup identity failed", zap.String("identity_id", identityID), zap.Error(err))
		return TransitionResult{}, apperror.Persistence(err)
	}

	res, err := s.applyDetection(ctx, identityID, today, now)
	if errors.Is(err, attendanceerrors.ErrDuplicateAttendance) {
		// Another detection created today's record first; apply ours on top of it.
		s.logger.Debug("lost create race, retrying as update", zap.String("identity_id", identityID))
		res, err = s.applyDetection(ctx, identityID, today, now)
	}
	if err != nil {
		s.logger.Error("process detection failed",
			zap.String("identity_id", identityID),
			zap.Time("now", now),
			zap.Error(err),
		)
		if errors.Is(err, attendanceerrors.ErrDuplicateAttendance) {
			return TransitionResult{}, apperror.Persistence(err)
		}
		return TransitionResult{}, err
	}

	s.metrics.ObserveOutcome(string(res.Outcome))
	s.logger.Debug("detection processed",
		zap.String("identity_id", identityID),
		zap.String("outcome", string(res.Outcome)),
		zap.Time("now", now),
	)
	return res, nil
}

// applyDetection runs one read-decide-write cycle in its own transaction.
func (s *service) applyDetection(ctx context.Context, identityID string, today, now time.Time) (TransitionResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TransitionResult{}, apperror.Persistence(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByIdentityAndDate(ctx, identityID, today)
	exists := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return TransitionResult{}, mapRepositoryError(err)
	}
	if !exists {
		row = &Attendance{
			ID:             uuid.New(),
			IdentityID:     identityID,
			AttendanceDate: today,
			Status:         StatusAbsent,
		}
	}

	outcome := apply(row, now, s.debounce)
	if !outcome.Mutates() {
		return TransitionResult{Outcome: outcome, Record: row}, nil
	}

	if exists {
		err = qtx.Update(ctx, row)
	} else {
		err = qtx.Create(ctx, row)
	}
	if err != nil {
		return TransitionResult{}, mapRepositoryError(err)
	}

	if err := s.writeTransitionEvent(ctx, tx, row, outcome, now); err != nil {
		return TransitionResult{}, apperror.Persistence(err)
	}

	if err := tx.Commit(); err != nil {
		return TransitionResult{}, apperror.Persistence(err)
	}
	return TransitionResult{Outcome: outcome, Record: row}, nil
}

func (s *service) writeTransitionEvent(ctx context.Context, tx *sql.Tx, row *Attendance, outcome Outcome, now time.Time) error {
	if s.outbox == nil {
		return nil
	}
	payload := events.AttendanceTransitionEvent{
		EventType:  events.EventTypeAttendanceTransition,
		RecordID:   row.ID.String(),
		IdentityID: row.IdentityID,
		Outcome:    string(outcome),
		Date:       clock.FormatDate(row.AttendanceDate),
		InTime:     row.InTime,
		OutTime:    row.OutTime,
		OccurredAt: now,
	}
	event, err := kafka.NewOutboxEvent(events.AggregateAttendance, row.IdentityID, payload.EventType, s.topic, payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}
