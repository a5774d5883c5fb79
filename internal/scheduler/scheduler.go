package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/astrodash/internal/forecast"
)

// Scheduler runs the dashboard's mount job once, in the background, so the
// HTTP server is up while the fetch is in flight.
type Scheduler struct {
	scheduler *gocron.Scheduler
	dashboard *forecast.Dashboard
	timeout   time.Duration
	logger    *zap.Logger
	done      chan struct{}
}

// New creates a new Scheduler.
func New(dashboard *forecast.Dashboard, timeout time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		dashboard: dashboard,
		timeout:   timeout,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start schedules the single-run mount job and starts the underlying scheduler.
// The job fires immediately.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().StartImmediately().LimitRunsTo(1).Do(s.mount)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Done is closed once the mount job has finished.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) mount() {
	defer close(s.done)

	s.logger.Info("scheduler: running forecast mount job")

	timeout := s.timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res := s.dashboard.Load(ctx)
	if !res.Ok() {
		s.logger.Warn("scheduler: forecast mount job finished without data", zap.Error(res.Err))
		return
	}
	s.logger.Info("scheduler: completed forecast mount job", zap.Int("records", res.Count))
}

// Stop stops the scheduler and cancels an in-flight load.
func (s *Scheduler) Stop() {
	s.dashboard.Close()
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
