package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trackingResumeJob *TrackingResumeJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(resumer Resumer, resumeIntervalSeconds int, logger *slog.Logger) *JobManager {
	return &JobManager{
		trackingResumeJob: NewTrackingResumeJob(resumer, resumeIntervalSeconds, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.trackingResumeJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking resume job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.trackingResumeJob.Stop()
}
