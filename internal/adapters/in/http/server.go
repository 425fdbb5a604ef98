// Package http exposes the tracking state over an Echo HTTP API. Handlers
// only render facade and query state; no scheduling decisions are made here.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// TrackingFacade is the facade surface the server renders and drives.
// Implemented by tracking.Tracker.
type TrackingFacade interface {
	CurrentOrder() *order.Order
	Refresh(ctx context.Context) error
	ClearOrder(ctx context.Context) error
}

// Server implements the HTTP API for order tracking.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	tracker TrackingFacade

	// Command handlers
	placeOrderHandler commands.PlaceOrderCommandHandler

	// Query handlers
	getActiveOrderHandler queries.GetActiveOrderQueryHandler
}

// NewServer creates a new HTTP server with the required facade and handlers.
func NewServer(
	tracker TrackingFacade,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	getActiveOrderHandler queries.GetActiveOrderQueryHandler,
) *Server {
	return &Server{
		tracker:               tracker,
		placeOrderHandler:     placeOrderHandler,
		getActiveOrderHandler: getActiveOrderHandler,
	}
}

// RegisterRoutes attaches all API routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/api/v1/order", s.GetOrder)
	e.GET("/api/v1/order/summary", s.GetOrderSummary)
	e.POST("/api/v1/orders", s.PlaceOrder)
	e.DELETE("/api/v1/order", s.ClearOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetOrder handles GET /api/v1/order - the full tracking view of the active
// order from the facade snapshot.
func (s *Server) GetOrder(ctx echo.Context) error {
	activeOrder := s.tracker.CurrentOrder()
	if activeOrder == nil {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "No active order",
		})
	}

	return ctx.JSON(http.StatusOK, orderViewFrom(activeOrder))
}

// GetOrderSummary handles GET /api/v1/order/summary - the compact dashboard
// projection, read through the query handler rather than the facade cache.
func (s *Server) GetOrderSummary(ctx echo.Context) error {
	query := queries.NewGetActiveOrderQuery()

	resp, err := s.getActiveOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}
	if resp == nil {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "No active order",
		})
	}

	return ctx.JSON(http.StatusOK, OrderSummaryView{
		ID:              resp.ID,
		Status:          resp.Status,
		CurrentLocation: resp.CurrentLocation,
		EstimatedTime:   resp.EstimatedTime,
		CompletedSteps:  resp.CompletedSteps,
		TotalSteps:      len(resp.Steps),
		Completed:       resp.Completed,
	})
}

// PlaceOrder handles POST /api/v1/orders - places a new tracked order and
// starts its progression.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var kind order.Kind
	switch req.Kind {
	case "", "delivery":
		kind = order.Delivery
	case "transport":
		kind = order.Transport
	default:
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order kind: " + req.Kind,
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		kind,
		req.ServiceLabel,
		req.DestinationAddress,
		req.PaymentMethod,
		req.Amount,
		time.Now(),
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to place order",
		})
	}

	// Pick up the new record and start its timer chain.
	if err := s.tracker.Refresh(ctx.Request().Context()); err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Order placed but tracking did not start",
		})
	}

	return ctx.NoContent(http.StatusCreated)
}

// ClearOrder handles DELETE /api/v1/order - clears the tracked order via the
// facade. Responds 409 when the configured policy forbids clearing a
// mid-flight order.
func (s *Server) ClearOrder(ctx echo.Context) error {
	if err := s.tracker.ClearOrder(ctx.Request().Context()); err != nil {
		if errors.Is(err, commands.ErrOrderStillActive) {
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order is still in progress",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to clear order",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}
