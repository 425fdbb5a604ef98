package commands

import (
	"context"

	"tracking/internal/core/domain/model/order"
)

// PlaceOrderCommandHandler handles the business logic for placing an order.
// Builds the initial record with step 0 pre-completed and Pending status,
// then persists it under the well-known key, overwriting any previous order.
type PlaceOrderCommandHandler struct {
	store OrderStore
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(store OrderStore) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		store: store,
	}
}

// Handle processes the place order command.
// The stored record becomes the single source of truth for the progression
// scheduler; the caller is expected to resume the tracking facade afterwards.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Kind(),
		cmd.ServiceLabel(),
		cmd.DestinationAddress(),
		cmd.PaymentMethod(),
		cmd.Amount(),
		cmd.CreatedAt(),
	)
	if err != nil {
		return err
	}

	return h.store.Save(ctx, newOrder)
}
