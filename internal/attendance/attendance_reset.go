package attendance

import (
	"context"
	"time"

	"face-logbook/internal/events"
	"face-logbook/internal/messaging/kafka"
	"face-logbook/internal/shared/apperror"
	"face-logbook/internal/shared/clock"

	"go.uber.org/zap"
)

func (s *service) ResetAll(ctx context.Context, date time.Time) (int, error) {
	loc := s.clock.Location()
	if date.IsZero() {
		date = s.clock.Now()
	}
	day := clock.DateOf(date, loc)
	key := clock.FormatDate(day)

	// Concurrent sweeps of the same day share one run.
	v, err, shared := s.sf.Do(key, func() (any, error) {
		return s.resetDay(ctx, day)
	})
	count, _ := v.(int)
	if shared {
		s.logger.Debug("reset joined in-flight sweep", zap.String("date", key))
	}
	return count, err
}

func (s *service) resetDay(ctx context.Context, day time.Time) (int, error) {
	started := time.Now()
	date := clock.FormatDate(day)
	log := s.logger.With(zap.String("date", date))

	total := 0
	after := ""
	for {
		if err := ctx.Err(); err != nil {
			s.metrics.ObserveReset(total, time.Since(started), err)
			return total, err
		}

		ids, err := s.identities.ListIDs(ctx, after, s.batchSize)
		if err != nil {
			log.Error("list roster page failed", zap.String("after", after), zap.Error(err))
			s.metrics.ObserveReset(total, time.Since(started), err)
			return total, apperror.Persistence(err)
		}
		if len(ids) == 0 {
			break
		}

		if err := s.resetBatch(ctx, ids, day); err != nil {
			log.Error("reset batch failed",
				zap.String("first_id", ids[0]),
				zap.Int("size", len(ids)),
				zap.Int("processed", total),
				zap.Error(err),
			)
			s.metrics.ObserveReset(total, time.Since(started), err)
			return total, err
		}
		total += len(ids)
		after = ids[len(ids)-1]

		if len(ids) < s.batchSize {
			break
		}
	}

	s.writeResetEvent(ctx, day, total)
	s.metrics.ObserveReset(total, time.Since(started), nil)
	log.Info("attendance reset completed", zap.Int("count", total), zap.Duration("elapsed", time.Since(started)))
	return total, nil
}

// resetBatch commits one page of identities in its own transaction so that
// row locks are held only for the page.
func (s *service) resetBatch(ctx context.Context, ids []string, day time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Persistence(err)
	}
	defer tx.Rollback()

	if _, err := s.repo.WithTx(tx).ResetForDate(ctx, ids, day); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return apperror.Persistence(err)
	}
	return nil
}

// writeResetEvent is best effort: the sweep has already committed.
func (s *service) writeResetEvent(ctx context.Context, day time.Time, count int) {
	if s.outbox == nil {
		return
	}
	date := clock.FormatDate(day)
	payload := events.AttendanceResetEvent{
		EventType:  events.EventTypeAttendanceReset,
		Date:       date,
		Count:      count,
		OccurredAt: s.clock.Now(),
	}
	event, err := kafka.NewOutboxEvent(events.AggregateRoster, date, payload.EventType, s.topic, payload)
	if err == nil {
		err = s.outbox.Create(ctx, event)
	}
	if err != nil {
		s.logger.Warn("enqueue reset event failed", zap.String("date", date), zap.Error(err))
	}
}
