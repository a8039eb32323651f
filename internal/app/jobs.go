package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prperemyshlev/task-manager/internal/repository"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// Job is a unit of periodic background work
type Job func(ctx context.Context) error

// Scheduler runs registered jobs on cron schedules. Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	c := cron.New(
		cron.WithParser(cron.NewParser(
			cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor,
		)),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	return &Scheduler{cron: c, logger: logger}
}

// Register adds job under name. An empty schedule disables the job.
func (s *Scheduler) Register(name, schedule string, job Job) error {
	if schedule == "" {
		s.logger.Info("Job disabled", zap.String("job", name))
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", schedule, name, err)
	}

	s.logger.Info("Job scheduled", zap.String("job", name), zap.String("schedule", schedule))
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		s.logger.Error("Job failed", zap.String("job", name), zap.Error(err))
		return
	}
	s.logger.Debug("Job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for jobs: %w", ctx.Err())
	}
}

// expiredSessionCleanup deletes sessions not renewed within ttl.
// Such sessions hold refresh tokens that can no longer verify.
func expiredSessionCleanup(tokens repository.TokenRepository, ttl time.Duration, now func() time.Time, logger *zap.Logger) Job {
	return func(ctx context.Context) error {
		deleted, err := tokens.DeleteExpired(ctx, now().Add(-ttl))
		if err != nil {
			return fmt.Errorf("failed to delete expired sessions: %w", err)
		}
		if deleted > 0 {
			logger.Info("Expired sessions removed", zap.Int64("count", deleted))
		}
		return nil
	}
}
