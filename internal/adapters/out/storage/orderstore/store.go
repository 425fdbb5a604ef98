package orderstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"
)

var _ ports.OrderStore = (*KVOrderStore)(nil)

// ActiveOrderKey is the well-known key the tracked order lives under.
// External collaborators write the same key to hand an order to the tracker.
const ActiveOrderKey = "tracking:active_order"

// KVOrderStore implements ports.OrderStore over a key-value store.
// Reads are fail-soft: a record that cannot be decoded or violates the
// aggregate invariants is reported as "no active order", never as an error,
// so one corrupt write can never wedge the tracker.
type KVOrderStore struct {
	kv  ports.KeyValueStore
	log *slog.Logger
}

// NewKVOrderStore creates an order store on top of the given key-value store.
func NewKVOrderStore(kv ports.KeyValueStore, log *slog.Logger) *KVOrderStore {
	return &KVOrderStore{
		kv:  kv,
		log: log.With("component", "orderstore"),
	}
}

// Load reads and rehydrates the active order. Returns (nil, nil) when the
// key is absent or the stored document is malformed.
func (s *KVOrderStore) Load(ctx context.Context) (*order.Order, error) {
	raw, ok, err := s.kv.Get(ctx, ActiveOrderKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ActiveOrderKey, err)
	}
	if !ok {
		return nil, nil //nolint:nilnil //absence is a valid result
	}

	var dto OrderDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		s.log.Warn("stored order is not valid JSON, treating as absent", "error", err)
		return nil, nil //nolint:nilnil //fail-soft on corrupt data
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		s.log.Warn("stored order violates invariants, treating as absent", "error", err)
		return nil, nil //nolint:nilnil //fail-soft on corrupt data
	}

	return aggregate, nil
}

// Save serializes and overwrites the active order.
func (s *KVOrderStore) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(fromDomain(aggregate))
	if err != nil {
		return fmt.Errorf("failed to serialize order: %w", err)
	}

	if err := s.kv.Set(ctx, ActiveOrderKey, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", ActiveOrderKey, err)
	}

	return nil
}

// Clear removes the active order. Clearing an absent record is a no-op.
func (s *KVOrderStore) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, ActiveOrderKey); err != nil {
		return fmt.Errorf("failed to remove %s: %w", ActiveOrderKey, err)
	}

	return nil
}
