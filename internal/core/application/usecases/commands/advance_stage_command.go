package commands

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/guard"
)

var (
	ErrAdvanceStageCommandIsNotConstructed = errors.New(
		"AdvanceStageCommand must be created via NewAdvanceStageCommand constructor",
	)
	ErrOccurredAtIsRequired = errors.New("occurredAt is required")
)

// AdvanceStageCommand represents a request to apply one timetable stage to
// the active order. The scheduler issues one command per due stage, in
// timetable order.
type AdvanceStageCommand struct { //nolint:recvcheck //using for validation
	stage      order.Stage
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewAdvanceStageCommand creates a command to advance the active order to
// the given stage at the given time.
func NewAdvanceStageCommand(stage order.Stage, occurredAt time.Time) (AdvanceStageCommand, error) {
	advanceCommand := AdvanceStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		advanceCommand.setStage(stage),
		advanceCommand.setOccurredAt(occurredAt),
	); err != nil {
		return AdvanceStageCommand{}, err
	}

	return advanceCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStageCommandIsNotConstructed)
}

// Stage returns the timetable stage to apply.
func (c AdvanceStageCommand) Stage() order.Stage {
	return c.stage
}

// OccurredAt returns the completion timestamp recorded on the steps.
func (c AdvanceStageCommand) OccurredAt() time.Time {
	return c.occurredAt
}

func (c *AdvanceStageCommand) setStage(stage order.Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}

func (c *AdvanceStageCommand) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return ErrOccurredAtIsRequired
	}

	c.occurredAt = occurredAt
	return nil
}
