// Package commands contains business operations that modify the tracked
// order. Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: constructor
// validation, a re-read of the latest persisted state, and persistence.
package commands

import (
	"context"

	"tracking/internal/core/domain/model/order"
)

// OrderStore is the persistence surface command handlers read and write
// through. It mirrors ports.OrderStore so handlers can be tested against
// lightweight mocks without importing adapter packages.
type OrderStore interface {
	// Load reads the active order; (nil, nil) means no active order.
	Load(ctx context.Context) (*order.Order, error)

	// Save serializes and overwrites the active order.
	Save(ctx context.Context, aggregate *order.Order) error

	// Clear removes the active order. Idempotent.
	Clear(ctx context.Context) error
}
