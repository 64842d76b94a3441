package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"disciplix/internal/logger"
	"disciplix/internal/metrics"
	"disciplix/internal/trainer"
)

// Scheduler runs the periodic maintenance jobs. Currently that is the hourly
// recompute of the denormalized trainer counters, which drift when reviews
// or sessions are changed outside the API.
type Scheduler struct {
	cron     *cron.Cron
	trainers trainer.Repository
}

func New(trainers trainer.Repository) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		trainers: trainers,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.recomputeTrainerCounters); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("scheduler started", "jobs", 1)
	return nil
}

// Stop waits for any running job before returning.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) recomputeTrainerCounters() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	updated, err := s.trainers.RecomputeCounters(ctx)
	if err != nil {
		logger.Error("recomputing trainer counters failed", "error", err)
		return
	}
	metrics.RecordTrainerCounterRecompute()
	logger.Info("trainer counters recomputed", "trainers", updated)
}
