package commands

import (
	"context"
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/order"
)

// ErrOrderNotPersisted signals that a stage was applied in memory but the
// write-back failed. The in-memory transition already happened; callers log
// and carry on rather than unwinding it.
var ErrOrderNotPersisted = errors.New("order state was not persisted")

// AdvanceStageCommandHandler handles the business logic for advancing the
// active order through its timetable. Each invocation re-reads the latest
// persisted state so that an order cleared between scheduling and firing
// becomes a silent no-op.
type AdvanceStageCommandHandler struct {
	store OrderStore
}

// NewAdvanceStageCommandHandler creates a handler for stage advancement.
func NewAdvanceStageCommandHandler(store OrderStore) AdvanceStageCommandHandler {
	return AdvanceStageCommandHandler{
		store: store,
	}
}

// Handle processes the advance stage command.
// Returns the updated order so callers can publish the new state, or nil
// when there is no active order. A stage that was already applied or an
// order already completed leaves the order untouched and is not an error.
// A failed write-back returns the updated order together with an error
// wrapping ErrOrderNotPersisted.
func (h *AdvanceStageCommandHandler) Handle(
	ctx context.Context, cmd AdvanceStageCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	activeOrder, err := h.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active order: %w", err)
	}
	if activeOrder == nil {
		return nil, nil
	}

	if err := activeOrder.ApplyStage(cmd.Stage(), cmd.OccurredAt()); err != nil {
		if errors.Is(err, order.ErrStageAlreadyApplied) || errors.Is(err, order.ErrOrderIsCompleted) {
			return activeOrder, nil
		}
		return nil, err
	}

	if err := h.store.Save(ctx, activeOrder); err != nil {
		return activeOrder, fmt.Errorf("%w: %w", ErrOrderNotPersisted, err)
	}

	return activeOrder, nil
}
