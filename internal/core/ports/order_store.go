package ports

import (
	"context"

	"tracking/internal/core/domain/model/order"
)

// OrderStore defines the persistence contract for the single active order.
// The record lives under one well-known key; absence of a value there means
// "no active order".
type OrderStore interface {
	// Load reads and rehydrates the active order.
	// Returns (nil, nil) when no order is stored. Malformed stored data is
	// treated the same way, never raised to the caller.
	Load(ctx context.Context) (*order.Order, error)

	// Save serializes and overwrites the active order.
	// A subsequent Load reflects it immediately.
	Save(ctx context.Context, aggregate *order.Order) error

	// Clear removes the active order.
	// Clearing when nothing is stored is not an error.
	Clear(ctx context.Context) error
}
