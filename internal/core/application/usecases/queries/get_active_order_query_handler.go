package queries

import (
	"context"
	"fmt"

	"tracking/internal/core/domain/model/order"
)

// OrderReader is the read-side persistence surface query handlers use.
// It mirrors the Load half of ports.OrderStore.
type OrderReader interface {
	// Load reads the active order; (nil, nil) means no active order.
	Load(ctx context.Context) (*order.Order, error)
}

// GetActiveOrderQueryHandler retrieves the tracked order from the store and
// maps it onto the read model.
type GetActiveOrderQueryHandler struct {
	reader OrderReader
}

// NewGetActiveOrderQueryHandler creates a handler for active order queries.
func NewGetActiveOrderQueryHandler(reader OrderReader) GetActiveOrderQueryHandler {
	return GetActiveOrderQueryHandler{reader: reader}
}

// Handle executes the query. Returns nil when no order is active; a missing
// or malformed stored record is "no order", never an error.
func (h GetActiveOrderQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrderQuery,
) (*GetActiveOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	activeOrder, err := h.reader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active order: %w", err)
	}
	if activeOrder == nil {
		return nil, nil //nolint:nilnil //absence is a valid query result
	}

	response := mapOrderToResponse(activeOrder)
	return &response, nil
}

func mapOrderToResponse(activeOrder *order.Order) GetActiveOrderQueryResponse {
	steps := activeOrder.Steps()
	stepResponses := make([]StepResponse, 0, len(steps))
	completedSteps := 0
	for _, step := range steps {
		if step.IsCompleted() {
			completedSteps++
		}
		stepResponses = append(stepResponses, StepResponse{
			Title:       step.Title(),
			Completed:   step.IsCompleted(),
			CompletedAt: step.CompletedAt(),
			Location:    step.Location(),
		})
	}

	return GetActiveOrderQueryResponse{
		ID:                 activeOrder.ID().String(),
		Kind:               activeOrder.Kind().String(),
		ServiceLabel:       activeOrder.ServiceLabel(),
		Status:             activeOrder.Status().String(),
		CreatedAt:          activeOrder.CreatedAt(),
		EstimatedTime:      activeOrder.EstimatedTime(),
		CurrentLocation:    activeOrder.CurrentLocation(),
		DestinationAddress: activeOrder.DestinationAddress(),
		Amount:             activeOrder.Amount(),
		PaymentMethod:      activeOrder.PaymentMethod(),
		Steps:              stepResponses,
		CompletedSteps:     completedSteps,
		Completed:          activeOrder.IsCompleted(),
	}
}
