package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Resumer re-reads persisted state and rebuilds the timer chain.
// Implemented by the tracking facade.
type Resumer interface {
	Refresh(ctx context.Context) error
}

// TrackingResumeJob periodically re-runs the facade refresh so orders written
// directly to the storage key by external collaborators are picked up without
// a process restart. Refresh is idempotent, so running it against an
// unchanged order is harmless.
type TrackingResumeJob struct {
	resumer  Resumer
	cron     *cron.Cron
	interval int
	logger   *slog.Logger
}

// NewTrackingResumeJob creates a job that refreshes tracking every
// intervalSeconds seconds.
func NewTrackingResumeJob(resumer Resumer, intervalSeconds int, logger *slog.Logger) *TrackingResumeJob {
	return &TrackingResumeJob{
		resumer:  resumer,
		cron:     cron.New(cron.WithSeconds()),
		interval: intervalSeconds,
		logger:   logger.With("component", "tracking_resume_job"),
	}
}

// Start begins the periodic refresh.
func (j *TrackingResumeJob) Start() error {
	spec := fmt.Sprintf("@every %ds", j.interval)
	_, err := j.cron.AddFunc(spec, func() {
		ctx := context.Background()
		if err := j.resumer.Refresh(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Tracking refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking resume job started",
		"intervalSeconds", j.interval)
	return nil
}

// Stop stops the periodic refresh.
func (j *TrackingResumeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking resume job stopped")
}
