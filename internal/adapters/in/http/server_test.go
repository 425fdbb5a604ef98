package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	trackinghttp "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/out/storage/memkv"
	"tracking/internal/adapters/out/storage/orderstore"
	"tracking/internal/core/application/tracking"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopScheduler satisfies the facade without running timers; progression is
// not under test here.
type noopScheduler struct{}

func (noopScheduler) Resume(_ context.Context, _ *order.Order) {}
func (noopScheduler) Cancel()                                  {}

type serverFixture struct {
	echo    *echo.Echo
	store   *orderstore.KVOrderStore
	tracker *tracking.Tracker
}

func newServerFixture(t *testing.T, policy commands.ClearPolicy) *serverFixture {
	t.Helper()
	store := orderstore.NewKVOrderStore(memkv.NewStore(), slog.Default())
	tracker := tracking.NewTracker(
		store,
		noopScheduler{},
		commands.NewClearOrderCommandHandler(store, policy),
		slog.Default(),
	)

	server := trackinghttp.NewServer(
		tracker,
		commands.NewPlaceOrderCommandHandler(store),
		queries.NewGetActiveOrderQueryHandler(store),
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return &serverFixture{echo: e, store: store, tracker: tracker}
}

func (f *serverFixture) placeOrder(t *testing.T) *order.Order {
	t.Helper()
	ord, err := order.NewOrder(
		kernel.NewUUID(), order.Delivery, "Grocery delivery",
		"12 Main St", "card", 4990, time.Now())
	require.NoError(t, err)
	require.NoError(t, f.store.Save(t.Context(), ord))
	require.NoError(t, f.tracker.Refresh(t.Context()))
	return ord
}

func (f *serverFixture) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)

	rec := f.request(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestServer_GetOrder_NoActiveOrder(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)

	rec := f.request(http.MethodGet, "/api/v1/order", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_GetOrder_ActiveOrder(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)
	ord := f.placeOrder(t)

	rec := f.request(http.MethodGet, "/api/v1/order", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view trackinghttp.OrderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, ord.ID().String(), view.ID)
	assert.Equal(t, "Delivery", view.Kind)
	assert.Equal(t, "Pending", view.Status)
	require.Len(t, view.Steps, order.StepCount)
	assert.True(t, view.Steps[0].Completed)
	assert.False(t, view.Steps[1].Completed)
}

func TestServer_GetOrderSummary(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)
	ord := f.placeOrder(t)

	rec := f.request(http.MethodGet, "/api/v1/order/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary trackinghttp.OrderSummaryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, ord.ID().String(), summary.ID)
	assert.Equal(t, "Pending", summary.Status)
	assert.Equal(t, 1, summary.CompletedSteps)
	assert.Equal(t, order.StepCount, summary.TotalSteps)
	assert.False(t, summary.Completed)
}

func TestServer_GetOrderSummary_NoActiveOrder(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)

	rec := f.request(http.MethodGet, "/api/v1/order/summary", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_PlaceOrder(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)

	body := `{
		"kind": "transport",
		"serviceLabel": "Furniture transport",
		"destinationAddress": "7 Oak Ave",
		"paymentMethod": "cash",
		"amount": 12500
	}`
	rec := f.request(http.MethodPost, "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	stored, err := f.store.Load(t.Context())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, order.Transport, stored.Kind())
	assert.Equal(t, "Furniture transport", stored.ServiceLabel())

	// The facade picked the new order up.
	current := f.tracker.CurrentOrder()
	require.NotNil(t, current)
	assert.True(t, stored.IsEqual(current))
}

func TestServer_PlaceOrder_InvalidBody(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)

	rec := f.request(http.MethodPost, "/api/v1/orders", `{"amount": "not a number"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_PlaceOrder_MissingFields(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)

	rec := f.request(http.MethodPost, "/api/v1/orders", `{"kind": "delivery"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_PlaceOrder_UnknownKind(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)

	body := `{
		"kind": "teleport",
		"serviceLabel": "x",
		"destinationAddress": "y",
		"paymentMethod": "card",
		"amount": 100
	}`
	rec := f.request(http.MethodPost, "/api/v1/orders", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ClearOrder_MidFlight_Conflict(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)
	f.placeOrder(t)

	rec := f.request(http.MethodDelete, "/api/v1/order", "")

	assert.Equal(t, http.StatusConflict, rec.Code)

	stored, err := f.store.Load(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestServer_ClearOrder_Completed(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)
	ord := f.placeOrder(t)
	require.NoError(t, ord.ApplyStage(order.StageDelivered, ord.CreatedAt().Add(8*time.Minute)))
	require.NoError(t, f.store.Save(t.Context(), ord))
	require.NoError(t, f.tracker.Refresh(t.Context()))

	rec := f.request(http.MethodDelete, "/api/v1/order", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)

	stored, err := f.store.Load(t.Context())
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestServer_ClearOrder_AnytimePolicy(t *testing.T) {
	f := newServerFixture(t, commands.ClearAnytime)
	f.placeOrder(t)

	rec := f.request(http.MethodDelete, "/api/v1/order", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestServer_ClearOrder_NothingStored(t *testing.T) {
	f := newServerFixture(t, commands.ClearCompletedOnly)

	rec := f.request(http.MethodDelete, "/api/v1/order", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
