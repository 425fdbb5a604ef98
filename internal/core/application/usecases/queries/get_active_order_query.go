// Package queries contains read-only operations over the tracked order.
// Implements the Query side of the CQRS architecture: handlers never mutate
// state and map the aggregate onto plain response structs.
package queries

import (
	"errors"
	"time"

	"tracking/internal/pkg/guard"
)

var ErrGetActiveOrderQueryIsNotConstructed = errors.New(
	"GetActiveOrderQuery must be created via NewGetActiveOrderQuery constructor",
)

// GetActiveOrderQuery retrieves the currently tracked order, if any.
//
// Example:
//
//	query := NewGetActiveOrderQuery()
//	handler := NewGetActiveOrderQueryHandler(store)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active order: %w", err)
//	}
//	if resp == nil {
//	    fmt.Println("no active order")
//	}
type GetActiveOrderQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrderQuery creates a query for the active order.
// This is a parameterless query; there is at most one active order.
func NewGetActiveOrderQuery() GetActiveOrderQuery {
	return GetActiveOrderQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrderQueryIsNotConstructed)
}

// GetActiveOrderQueryResponse is the read model of the tracked order.
// All fields are plain values ready for presentation; nothing here can
// mutate the underlying aggregate.
type GetActiveOrderQueryResponse struct {
	ID                 string
	Kind               string
	ServiceLabel       string
	Status             string
	CreatedAt          time.Time
	EstimatedTime      string
	CurrentLocation    string
	DestinationAddress string
	Amount             int64
	PaymentMethod      string
	Steps              []StepResponse
	CompletedSteps     int
	Completed          bool
}

// StepResponse is the read model of one progression step.
type StepResponse struct {
	Title       string
	Completed   bool
	CompletedAt *time.Time
	Location    string
}
