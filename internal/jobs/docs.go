// Package jobs provides the timer-driven progression engine and scheduled
// background tasks for the tracking service.
//
// ProgressionScheduler is the heart of the package: it turns the fixed stage
// timetable into catch-up applications and one-shot timers, all anchored to
// the order's creation time. It is driven by the tracking facade, never
// started on its own.
//
// TrackingResumeJob is a cron-based job (github.com/robfig/cron/v3) that
// periodically re-runs the facade refresh, picking up order records written
// to storage by external collaborators.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(tracker, resumeIntervalSeconds, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A stage that fails to persist is logged as a warning and does not stop the
// chain; a refresh failure is logged and retried on the next tick.
package jobs
