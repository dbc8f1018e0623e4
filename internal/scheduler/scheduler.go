package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-proxy/internal/weather"
)

// Prober checks whether the upstream answers.
type Prober interface {
	Probe(ctx context.Context, query string) weather.ProbeResult
}

// Scheduler periodically probes the upstream provider.
type Scheduler struct {
	scheduler *gocron.Scheduler
	prober    Prober
	query     string
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. A non-positive interval disables probing.
func New(prober Prober, query string, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		prober:    prober,
		query:     query,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "scheduler")),
	}
}

// Start schedules the probe job and starts the underlying scheduler.
// The first probe runs immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("upstream probing disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		res := s.prober.Probe(ctx, s.query)
		s.logger.Debug("upstream probe completed",
			slog.Bool("ok", res.OK),
			slog.Duration("latency", res.Latency),
			slog.String("reason", res.Reason),
		)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("upstream probing started", slog.Duration("interval", s.interval))
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
