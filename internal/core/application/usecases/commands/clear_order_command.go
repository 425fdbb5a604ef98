package commands

import (
	"errors"

	"tracking/internal/pkg/guard"
)

var ErrClearOrderCommandIsNotConstructed = errors.New(
	"ClearOrderCommand must be created via NewClearOrderCommand constructor",
)

// ClearOrderCommand represents a request to remove the active order record.
// The command carries no data; whether a mid-flight order may be cleared is
// decided by the handler's policy.
type ClearOrderCommand struct {
	guard guard.ConstructorGuard
}

// NewClearOrderCommand creates a command to clear the active order.
func NewClearOrderCommand() (ClearOrderCommand, error) {
	return ClearOrderCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClearOrderCommand) Validate() error {
	return c.guard.Validate(ErrClearOrderCommandIsNotConstructed)
}
