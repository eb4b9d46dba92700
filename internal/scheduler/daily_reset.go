// Package scheduler runs the once-a-day attendance reset at local midnight.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"face-logbook/internal/shared/apperror"
	"face-logbook/internal/shared/clock"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockKeyPrefix = "attendance:reset:"

// Resetter performs the full-roster sweep for one civil day.
type Resetter interface {
	ResetAll(ctx context.Context, date time.Time) (int, error)
}

// SleepFunc blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Option func(*DailyReset)

func WithClock(c clock.Clock) Option {
	return func(d *DailyReset) { d.clock = c }
}

func WithSleep(fn SleepFunc) Option {
	return func(d *DailyReset) { d.sleep = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(d *DailyReset) {
		if l != nil {
			d.logger = l.Named("scheduler.daily_reset")
		}
	}
}

// WithLock makes replicas sharing rdb agree on a single sweeper per day.
// owner identifies this process in the lock value.
func WithLock(rdb redis.Cmdable, owner string, ttl time.Duration) Option {
	return func(d *DailyReset) {
		d.lock = rdb
		d.owner = owner
		d.lockTTL = ttl
	}
}

type DailyReset struct {
	resetter Resetter
	clock    clock.Clock
	sleep    SleepFunc
	logger   *zap.Logger

	lock    redis.Cmdable
	owner   string
	lockTTL time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewDailyReset(resetter Resetter, opts ...Option) *DailyReset {
	d := &DailyReset{
		resetter: resetter,
		clock:    clock.System(time.UTC),
		sleep:    sleepContext,
		logger:   zap.L().Named("scheduler.daily_reset"),
		lockTTL:  time.Hour,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.owner == "" {
		d.owner, _ = os.Hostname()
	}
	return d
}

// Start launches the loop and reports whether it did. Calling Start while
// the loop is alive is a no-op that returns false.
func (d *DailyReset) Start(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done != nil {
		return false
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done

	go func() {
		defer func() {
			d.mu.Lock()
			if d.done == done {
				d.done = nil
				d.cancel = nil
			}
			d.mu.Unlock()
			cancel()
			close(done)
		}()
		d.run(runCtx)
	}()
	return true
}

// Stop interrupts the pending sleep and waits for the loop to exit.
func (d *DailyReset) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (d *DailyReset) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done != nil
}

func (d *DailyReset) run(ctx context.Context) {
	loc := d.clock.Location()
	d.logger.Info("daily reset scheduler started", zap.String("timezone", loc.String()))

	for {
		now := d.clock.Now()
		target := clock.NextMidnight(now, loc)
		wait := target.Sub(now)
		d.logger.Debug("sleeping until midnight", zap.Time("target", target), zap.Duration("wait", wait))

		if err := d.sleep(ctx, wait); err != nil {
			d.logger.Info("daily reset scheduler stopped")
			return
		}

		if err := d.RunOnce(ctx, target); err != nil {
			if ctx.Err() != nil {
				d.logger.Info("daily reset scheduler stopped during sweep")
				return
			}
			d.logger.Error("daily reset failed",
				zap.String("code", apperror.CodeOf(err)),
				zap.String("date", clock.FormatDate(target)),
				zap.Error(err),
			)
		}
	}
}

// RunOnce sweeps the civil day of date. Panics and sweep failures come back
// as SCHEDULER_TASK_ERROR. When another replica already holds the day's
// lock the sweep is skipped.
func (d *DailyReset) RunOnce(ctx context.Context, date time.Time) (err error) {
	day := clock.FormatDate(clock.DateOf(date, d.clock.Location()))

	defer func() {
		if r := recover(); r != nil {
			err = apperror.Wrap(fmt.Errorf("panic: %v", r),
				apperror.CodeSchedulerTask, apperror.ErrSchedulerTask.Message, apperror.ErrSchedulerTask.HTTPStatus)
		}
	}()

	acquired, err := d.acquire(ctx, day)
	if err != nil {
		// Sweep without the lock when redis is unreachable.
		d.logger.Warn("reset lock unavailable, sweeping anyway", zap.String("date", day), zap.Error(err))
	} else if !acquired {
		d.logger.Info("reset already claimed by another replica", zap.String("date", day))
		return nil
	}

	count, err := d.resetter.ResetAll(ctx, date)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return apperror.Wrap(err, apperror.CodeSchedulerTask, apperror.ErrSchedulerTask.Message, apperror.ErrSchedulerTask.HTTPStatus)
	}

	d.logger.Info("daily reset completed", zap.String("date", day), zap.Int("count", count))
	return nil
}

func (d *DailyReset) acquire(ctx context.Context, day string) (bool, error) {
	if d.lock == nil {
		return true, nil
	}
	return d.lock.SetNX(ctx, lockKeyPrefix+day, d.owner, d.lockTTL).Result()
}

func sleepContext(ctx context.Context, wait time.Duration) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
