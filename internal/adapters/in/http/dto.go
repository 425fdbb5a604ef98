package http

import (
	"time"

	"tracking/internal/core/domain/model/order"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	Kind               string `json:"kind"`
	ServiceLabel       string `json:"serviceLabel"`
	DestinationAddress string `json:"destinationAddress"`
	PaymentMethod      string `json:"paymentMethod"`
	Amount             int64  `json:"amount"`
}

// OrderView is the full tracking view of the active order.
type OrderView struct {
	ID                 string     `json:"id"`
	Kind               string     `json:"kind"`
	ServiceLabel       string     `json:"serviceLabel"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	EstimatedTime      string     `json:"estimatedTime"`
	CurrentLocation    string     `json:"currentLocation"`
	DestinationAddress string     `json:"destinationAddress"`
	Amount             int64      `json:"amount"`
	PaymentMethod      string     `json:"paymentMethod"`
	Steps              []StepView `json:"steps"`
	Completed          bool       `json:"completed"`
}

// StepView is one progression step in the tracking view.
type StepView struct {
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Location    string     `json:"location,omitempty"`
}

// orderViewFrom maps the order aggregate onto the tracking view.
func orderViewFrom(activeOrder *order.Order) OrderView {
	steps := activeOrder.Steps()
	stepViews := make([]StepView, 0, len(steps))
	for _, step := range steps {
		stepViews = append(stepViews, StepView{
			Title:       step.Title(),
			Completed:   step.IsCompleted(),
			CompletedAt: step.CompletedAt(),
			Location:    step.Location(),
		})
	}

	return OrderView{
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
		Steps:              stepViews,
		Completed:          activeOrder.IsCompleted(),
	}
}

// OrderSummaryView is the compact dashboard projection of the active order.
type OrderSummaryView struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	CurrentLocation string `json:"currentLocation"`
	EstimatedTime   string `json:"estimatedTime"`
	CompletedSteps  int    `json:"completedSteps"`
	TotalSteps      int    `json:"totalSteps"`
	Completed       bool   `json:"completed"`
}
