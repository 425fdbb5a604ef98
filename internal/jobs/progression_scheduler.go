package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/clock"
)

// OrderObserver receives every order snapshot the scheduler produces.
type OrderObserver func(*order.Order)

// ProgressionScheduler owns the timer chain that advances the active order
// through its timetable. Resume applies all already-elapsed stages
// synchronously (catch-up) and schedules one timer per future stage. Each
// firing goes through the advance-stage handler, which re-reads persisted
// state, so an order cleared while a timer is in flight is a silent no-op.
//
// Resume is idempotent: it cancels the previous chain before building the
// new one, so at most one chain is live per scheduler.
type ProgressionScheduler struct {
	handler  commands.AdvanceStageCommandHandler
	clk      clock.Clock
	onChange OrderObserver
	logger   *slog.Logger

	mu     sync.Mutex
	timers []clock.Timer
}

// NewProgressionScheduler creates a scheduler that advances orders through
// the given handler and reports every snapshot to onChange (may be nil).
func NewProgressionScheduler(
	handler commands.AdvanceStageCommandHandler,
	clk clock.Clock,
	onChange OrderObserver,
	logger *slog.Logger,
) *ProgressionScheduler {
	return &ProgressionScheduler{
		handler:  handler,
		clk:      clk,
		onChange: onChange,
		logger:   logger.With("component", "progression_scheduler"),
	}
}

// Resume rebuilds the timer chain for the given order. Any previously
// scheduled timers are cancelled first. A nil or completed order leaves the
// scheduler idle.
func (s *ProgressionScheduler) Resume(ctx context.Context, activeOrder *order.Order) {
	s.Cancel()

	if activeOrder == nil {
		return
	}
	if activeOrder.IsCompleted() {
		s.logger.InfoContext(ctx, "order already completed, nothing to schedule",
			"orderID", activeOrder.ID().String())
		return
	}

	createdAt := activeOrder.CreatedAt()
	now := s.clk.Now()

	// Catch-up: apply every already-elapsed stage in timetable order.
	for _, stage := range order.StagesDueAsOf(createdAt, now) {
		s.applyStage(ctx, stage, createdAt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stage := range order.Stages() {
		deadline := createdAt.Add(stage.Offset())
		if !deadline.After(now) {
			continue
		}
		timer := s.clk.AfterFunc(deadline.Sub(now), func() {
			s.applyStage(context.Background(), stage, createdAt)
		})
		s.timers = append(s.timers, timer)
	}
}

// Cancel stops every outstanding timer. Safe to call at any time, including
// when nothing is scheduled.
func (s *ProgressionScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, timer := range s.timers {
		timer.Stop()
	}
	s.timers = nil
}

// applyStage runs the advance-stage handler for one stage and publishes the
// resulting snapshot. The step completion time is the scheduled deadline, not
// the wall-clock firing time, so caught-up and timer-driven transitions
// record identical timestamps.
func (s *ProgressionScheduler) applyStage(ctx context.Context, stage order.Stage, createdAt time.Time) {
	cmd, err := commands.NewAdvanceStageCommand(stage, createdAt.Add(stage.Offset()))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build advance stage command",
			"stage", stage.String(), "error", err)
		return
	}

	updated, err := s.handler.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, commands.ErrOrderNotPersisted) {
			// In-memory state advanced; keep going and surface a warning.
			s.logger.WarnContext(ctx, "stage applied but not persisted",
				"stage", stage.String(), "error", err)
		} else {
			s.logger.ErrorContext(ctx, "failed to advance stage",
				"stage", stage.String(), "error", err)
			return
		}
	}

	if updated != nil && s.onChange != nil {
		s.onChange(updated)
	}
}
