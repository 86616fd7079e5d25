// Package job runs periodic maintenance on the academic collections.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// runTimeout bounds a single refresh run.
const runTimeout = 2 * time.Minute

// UtilizationRefresher recomputes room utilization from the booked schedules.
type UtilizationRefresher interface {
	RefreshUtilization(ctx context.Context) (int, error)
}

// Scheduler owns the cron runner for the utilization refresh.
type Scheduler struct {
	cron   *cron.Cron
	svc    UtilizationRefresher
	logger *zap.Logger
}

// NewScheduler registers the refresh on spec, a standard five field cron
// expression or a descriptor such as "@every 15m". Overlapping runs are
// skipped.
func NewScheduler(spec string, svc UtilizationRefresher, logger *zap.Logger) (*Scheduler, error) {
	cl := cronLogger{logger.Sugar()}
	s := &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)), cron.WithLogger(cl)),
		svc:    svc,
		logger: logger,
	}

	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("add utilization refresh %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("utilization refresh scheduled", zap.Int("entries", len(s.cron.Entries())))
}

// Stop prevents new runs and returns a context that is done once the running
// one has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce performs one refresh.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.svc.RefreshUtilization(ctx)
	if err != nil {
		s.logger.Error("utilization refresh failed", zap.Error(err))
		return
	}
	s.logger.Info("utilization refreshed",
		zap.Int("rooms_updated", n),
		zap.Duration("took", time.Since(start)),
	)
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
