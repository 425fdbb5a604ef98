package commands

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrOrderStillActive signals a clear attempt on an order that has not
	// reached its terminal status while the handler runs under
	// ClearCompletedOnly.
	ErrOrderStillActive = errors.New("order is still in progress and cannot be cleared")

	ErrClearPolicyIsInvalid = errors.New("clear policy is invalid")
)

// ClearPolicy controls whether an order may be cleared before it completes.
type ClearPolicy int

const (
	// ClearCompletedOnly rejects clears while the order is mid-flight.
	ClearCompletedOnly ClearPolicy = iota

	// ClearAnytime allows clearing regardless of order status.
	ClearAnytime
)

// ParseClearPolicy maps a configuration string onto a ClearPolicy.
// Accepts "completed-only" and "anytime"; the empty string defaults to
// ClearCompletedOnly.
func ParseClearPolicy(value string) (ClearPolicy, error) {
	switch value {
	case "", "completed-only":
		return ClearCompletedOnly, nil
	case "anytime":
		return ClearAnytime, nil
	default:
		return ClearCompletedOnly, fmt.Errorf("%w: %s", ErrClearPolicyIsInvalid, value)
	}
}

// ClearOrderCommandHandler handles the business logic for clearing the
// active order record.
type ClearOrderCommandHandler struct {
	store  OrderStore
	policy ClearPolicy
}

// NewClearOrderCommandHandler creates a handler for order clearing with the
// given policy.
func NewClearOrderCommandHandler(store OrderStore, policy ClearPolicy) ClearOrderCommandHandler {
	return ClearOrderCommandHandler{
		store:  store,
		policy: policy,
	}
}

// Handle processes the clear order command.
// Clearing when nothing is stored succeeds without effect. Under
// ClearCompletedOnly a mid-flight order is rejected with ErrOrderStillActive.
func (h *ClearOrderCommandHandler) Handle(ctx context.Context, cmd ClearOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if h.policy == ClearCompletedOnly {
		activeOrder, err := h.store.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load active order: %w", err)
		}
		if activeOrder != nil && !activeOrder.IsCompleted() {
			return ErrOrderStillActive
		}
	}

	return h.store.Clear(ctx)
}
