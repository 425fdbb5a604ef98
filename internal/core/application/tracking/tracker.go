// Package tracking exposes the order progression engine behind a small
// facade. Consumers start it once, read snapshots, and subscribe to changes;
// all scheduling stays inside.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/order"
)

// Scheduler is the timer chain the tracker drives. Implemented by
// jobs.ProgressionScheduler.
type Scheduler interface {
	Resume(ctx context.Context, activeOrder *order.Order)
	Cancel()
}

// OrderLoader reads the persisted active order.
type OrderLoader interface {
	Load(ctx context.Context) (*order.Order, error)
}

// Subscriber receives a snapshot on every order change. A nil snapshot
// means the order was cleared.
type Subscriber func(*order.Order)

// Tracker is the single entry point for order tracking. It owns one
// scheduler chain, caches the latest snapshot, and fans changes out to
// subscribers. All methods are safe for concurrent use.
type Tracker struct {
	loader       OrderLoader
	scheduler    Scheduler
	clearHandler commands.ClearOrderCommandHandler
	logger       *slog.Logger

	mu          sync.RWMutex
	current     *order.Order
	subscribers []Subscriber
}

// NewTracker creates a tracker over the given store and scheduler.
// Wire the returned tracker's OnOrderChanged as the scheduler's observer so
// timer-driven updates flow back in.
func NewTracker(
	loader OrderLoader,
	scheduler Scheduler,
	clearHandler commands.ClearOrderCommandHandler,
	logger *slog.Logger,
) *Tracker {
	return &Tracker{
		loader:       loader,
		scheduler:    scheduler,
		clearHandler: clearHandler,
		logger:       logger.With("component", "tracker"),
	}
}

// Start loads persisted state and resumes scheduling when an active,
// not-yet-completed order exists. Starting with nothing stored is valid;
// the tracker stays idle until Refresh finds an order.
func (t *Tracker) Start(ctx context.Context) error {
	return t.Refresh(ctx)
}

// Refresh re-reads persisted state and rebuilds the timer chain. Idempotent:
// refreshing an unchanged order replaces the chain with an equivalent one
// and never double-applies a stage.
func (t *Tracker) Refresh(ctx context.Context) error {
	activeOrder, err := t.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active order: %w", err)
	}

	if activeOrder != nil {
		t.logger.DebugContext(ctx, "resuming order tracking",
			"orderID", activeOrder.ID().String(), "status", activeOrder.Status().String())
	}

	t.setCurrent(activeOrder)
	t.scheduler.Resume(ctx, activeOrder)

	// Resume may have advanced the order; re-read so the cached snapshot
	// reflects the caught-up state.
	caughtUp, err := t.loader.Load(ctx)
	if err == nil && caughtUp != nil {
		t.setCurrent(caughtUp)
	}

	return nil
}

// CurrentOrder returns the latest known snapshot, or nil when no order is
// active.
func (t *Tracker) CurrentOrder() *order.Order {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// ClearOrder cancels scheduling and removes the persisted record.
// Timers are cancelled before storage is touched so no transition can fire
// against a record being deleted. Returns commands.ErrOrderStillActive when
// the configured policy forbids clearing a mid-flight order; scheduling is
// restored in that case.
func (t *Tracker) ClearOrder(ctx context.Context) error {
	t.scheduler.Cancel()

	cmd, err := commands.NewClearOrderCommand()
	if err != nil {
		return err
	}

	if err := t.clearHandler.Handle(ctx, cmd); err != nil {
		if errors.Is(err, commands.ErrOrderStillActive) {
			// Policy rejected the clear; put the timer chain back.
			t.scheduler.Resume(ctx, t.CurrentOrder())
		}
		return err
	}

	t.setCurrent(nil)
	t.publish(nil)
	return nil
}

// Subscribe registers fn for every subsequent order change. Subscribers are
// invoked synchronously on the goroutine producing the change.
func (t *Tracker) Subscribe(fn Subscriber) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, fn)
}

// Stop cancels scheduling without touching storage. The persisted record
// survives, so a later Start resumes exactly where tracking left off.
func (t *Tracker) Stop() {
	t.scheduler.Cancel()
}

// OnOrderChanged is the scheduler observer: caches the snapshot and fans it
// out to subscribers.
func (t *Tracker) OnOrderChanged(activeOrder *order.Order) {
	t.setCurrent(activeOrder)
	t.publish(activeOrder)
}

func (t *Tracker) setCurrent(activeOrder *order.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = activeOrder
}

func (t *Tracker) publish(activeOrder *order.Order) {
	t.mu.RLock()
	subscribers := make([]Subscriber, len(t.subscribers))
	copy(subscribers, t.subscribers)
	t.mu.RUnlock()

	for _, fn := range subscribers {
		fn(activeOrder)
	}
}
