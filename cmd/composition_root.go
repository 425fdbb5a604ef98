package cmd

import (
	"log/slog"

	trackinghttp "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/out/storage/orderstore"
	"tracking/internal/core/application/tracking"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"
	"tracking/internal/jobs"
	"tracking/internal/pkg/clock"
)

// CompositionRoot wires storage, handlers, scheduler, facade and server.
// One root owns one tracker and one scheduler chain.
type CompositionRoot struct {
	config Config
	store  *orderstore.KVOrderStore
	logger *slog.Logger

	tracker *tracking.Tracker
}

// NewCompositionRoot builds the object graph on top of the given key-value
// store (gorm-backed or in-memory, per configuration).
func NewCompositionRoot(
	config Config,
	kv ports.KeyValueStore,
	clearPolicy commands.ClearPolicy,
	logger *slog.Logger,
) *CompositionRoot {
	root := &CompositionRoot{
		config: config,
		store:  orderstore.NewKVOrderStore(kv, logger),
		logger: logger,
	}

	// The scheduler reports into the tracker; the tracker drives the
	// scheduler. The closure breaks the construction cycle.
	scheduler := jobs.NewProgressionScheduler(
		commands.NewAdvanceStageCommandHandler(root.store),
		clock.NewSystem(),
		func(o *order.Order) { root.tracker.OnOrderChanged(o) },
		logger,
	)

	root.tracker = tracking.NewTracker(
		root.store,
		scheduler,
		commands.NewClearOrderCommandHandler(root.store, clearPolicy),
		logger,
	)

	return root
}

// Tracker returns the tracking facade.
func (c *CompositionRoot) Tracker() *tracking.Tracker {
	return c.tracker
}

// CreatePlaceOrderCommandHandler creates the order placement handler.
func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.store)
}

// CreateGetActiveOrderQueryHandler creates the active order query handler.
func (c *CompositionRoot) CreateGetActiveOrderQueryHandler() queries.GetActiveOrderQueryHandler {
	return queries.NewGetActiveOrderQueryHandler(c.store)
}

// CreateHTTPServer creates the HTTP server over the facade and handlers.
func (c *CompositionRoot) CreateHTTPServer() *trackinghttp.Server {
	return trackinghttp.NewServer(
		c.tracker,
		c.CreatePlaceOrderCommandHandler(),
		c.CreateGetActiveOrderQueryHandler(),
	)
}

// CreateJobManager creates the background job coordinator.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.tracker, c.config.ResumeIntervalSeconds, c.logger)
}
