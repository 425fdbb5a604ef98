// Package orderstore persists the single tracked order as a JSON document in
// a key-value store. It implements ports.OrderStore on top of any
// ports.KeyValueStore, handling the conversion between the domain aggregate
// and its serialized representation.
package orderstore

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
)

// OrderDTO is the JSON document stored under the active-order key.
// External collaborators may write this shape directly; every field is
// re-validated on load.
type OrderDTO struct {
	ID                 string    `json:"id"`
	Kind               int       `json:"kind"`
	ServiceLabel       string    `json:"serviceLabel"`
	Status             int       `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	EstimatedTime      string    `json:"estimatedTime"`
	CurrentLocation    string    `json:"currentLocation"`
	DestinationAddress string    `json:"destinationAddress"`
	Amount             int64     `json:"amount"`
	PaymentMethod      string    `json:"paymentMethod"`
	Steps              []StepDTO `json:"steps"`
}

// StepDTO is the serialized form of one progression step.
type StepDTO struct {
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Location    string     `json:"location"`
}

// fromDomain converts the order aggregate to its serialized representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	steps := aggregate.Steps()
	stepDTOs := make([]StepDTO, 0, len(steps))
	for _, step := range steps {
		stepDTOs = append(stepDTOs, StepDTO{
			Title:       step.Title(),
			Completed:   step.IsCompleted(),
			CompletedAt: step.CompletedAt(),
			Location:    step.Location(),
		})
	}

	return OrderDTO{
		ID:                 aggregate.ID().String(),
		Kind:               int(aggregate.Kind()),
		ServiceLabel:       aggregate.ServiceLabel(),
		Status:             int(aggregate.Status()),
		CreatedAt:          aggregate.CreatedAt(),
		EstimatedTime:      aggregate.EstimatedTime(),
		CurrentLocation:    aggregate.CurrentLocation(),
		DestinationAddress: aggregate.DestinationAddress(),
		Amount:             aggregate.Amount(),
		PaymentMethod:      aggregate.PaymentMethod(),
		Steps:              stepDTOs,
	}
}

// toDomain converts a stored document to the order aggregate.
// Reconstruction goes through RestoreOrder, which re-checks every invariant;
// any failure marks the document as corrupt.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	steps := make([]order.Step, 0, len(dto.Steps))
	for _, stepDTO := range dto.Steps {
		steps = append(steps, order.RestoreStep(
			stepDTO.Title,
			stepDTO.Completed,
			stepDTO.CompletedAt,
			stepDTO.Location,
		))
	}

	return order.RestoreOrder(
		id,
		order.Kind(dto.Kind),
		dto.ServiceLabel,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.EstimatedTime,
		dto.CurrentLocation,
		dto.DestinationAddress,
		dto.Amount,
		dto.PaymentMethod,
		steps,
	)
}
