package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-dashboard/pkg/client"
)

// Scheduler refreshes the weather caches for a fixed set of cities in the
// background so dashboard loads stay warm.
type Scheduler struct {
	cron   *cron.Cron
	client *client.Client
	cities []string
	days   int
	logger *zap.Logger
}

func New(cl *client.Client, cities []string, days int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		client: cl,
		cities: cities,
		days:   days,
		logger: logger,
	}
}

// Start schedules the refresh job at the given interval and runs one
// refresh immediately.
func (s *Scheduler) Start(interval time.Duration) error {
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(spec, s.refreshAll); err != nil {
		return fmt.Errorf("scheduling refresh job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Refresh scheduler started",
		zap.Duration("interval", interval),
		zap.Strings("cities", s.cities))

	go s.refreshAll()
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Refresh scheduler stopped")
}

func (s *Scheduler) refreshAll() {
	start := time.Now()

	for _, city := range s.cities {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		_, err := s.client.Refresh(ctx, city, s.days)
		cancel()

		if err != nil {
			s.logger.Error("Scheduled refresh failed",
				zap.String("city", city),
				zap.Error(err))
			continue
		}
		s.logger.Debug("Scheduled refresh completed", zap.String("city", city))
	}

	s.logger.Info("Scheduled refresh cycle finished",
		zap.Int("cities", len(s.cities)),
		zap.Duration("duration", time.Since(start)))
}
