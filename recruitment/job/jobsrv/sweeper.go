package jobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/logx"
)

// Locker guards a sweep so that only one process runs it at a time
type Locker interface {
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
}

// Sweeper periodically expires job postings
type Sweeper struct {
	service  *JobService
	locker   Locker
	interval time.Duration
	now      func() time.Time
}

// NewSweeper creates a sweeper. A nil locker runs every tick unguarded.
func NewSweeper(service *JobService, locker Locker, interval time.Duration) *Sweeper {
	return &Sweeper{
		service:  service,
		locker:   locker,
		interval: interval,
		now:      time.Now,
	}
}

// RunOnce performs one guarded sweep. ran is false when another process holds the lock.
// A locker failure does not skip the sweep.
func (s *Sweeper) RunOnce(ctx context.Context) (count int64, ran bool, err error) {
	if s.locker != nil {
		acquired, lerr := s.locker.TryLock(ctx)
		switch {
		case lerr != nil:
			logx.Warnf("Sweep lock unavailable, sweeping unguarded: %v", lerr)
		case !acquired:
			return 0, false, nil
		default:
			defer func() {
				if uerr := s.locker.Unlock(context.Background()); uerr != nil {
					logx.Warnf("Failed to release sweep lock: %v", uerr)
				}
			}()
		}
	}

	count, err = s.service.SweepExpiredJobs(ctx, s.now())
	return count, true, err
}

// Start sweeps once immediately and then on every interval until ctx is done
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logx.Infof("Job expiry sweeper started (interval %s)", s.interval)

	for {
		if _, ran, err := s.RunOnce(ctx); err != nil {
			// Picked up again on the next tick
			logx.Errorf("Job expiry sweep failed: %v", err)
		} else if !ran {
			logx.Debugf("Job expiry sweep skipped, lock held elsewhere")
		}

		select {
		case <-ctx.Done():
			logx.Info("Job expiry sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}
