package commands_test

import (
	"errors"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeActiveOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()
	ord, err := order.NewOrder(
		kernel.NewUUID(), order.Delivery, "Grocery delivery",
		"12 Main St", "card", 4990, createdAt)
	require.NoError(t, err)
	return ord
}

func TestAdvanceStageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	createdAt := time.Now()
	ord := makeActiveOrder(t, createdAt)
	cmd, err := commands.NewAdvanceStageCommand(order.StageConfirmed, createdAt.Add(30*time.Second))
	require.NoError(t, err)

	store := new(MockOrderStore)
	mock.InOrder(
		store.On("Load", ctx).Return(ord, nil).Once(),
		store.On("Save", ctx, ord).Return(nil).Once(),
	)

	h := commands.NewAdvanceStageCommandHandler(store)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, order.Confirmed, updated.Status())
	assert.True(t, updated.Steps()[1].IsCompleted())
	store.AssertExpectations(t)
}

func TestAdvanceStageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AdvanceStageCommand{} // not constructed properly
	store := new(MockOrderStore)
	h := commands.NewAdvanceStageCommandHandler(store)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	store.AssertNotCalled(t, "Load", mock.Anything)
}

func TestAdvanceStageCommandHandler_Handle_NoActiveOrder(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAdvanceStageCommand(order.StageConfirmed, time.Now())
	require.NoError(t, err)

	store := new(MockOrderStore)
	store.On("Load", ctx).Return(nil, nil).Once()

	h := commands.NewAdvanceStageCommandHandler(store)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Nil(t, updated)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdvanceStageCommandHandler_Handle_LoadError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAdvanceStageCommand(order.StageConfirmed, time.Now())
	require.NoError(t, err)

	store := new(MockOrderStore)
	store.On("Load", ctx).Return(nil, errors.New("load error")).Once()

	h := commands.NewAdvanceStageCommandHandler(store)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestAdvanceStageCommandHandler_Handle_StageAlreadyApplied(t *testing.T) {
	ctx := t.Context()
	createdAt := time.Now()
	ord := makeActiveOrder(t, createdAt)
	require.NoError(t, ord.ApplyStage(order.StageConfirmed, createdAt.Add(30*time.Second)))

	cmd, err := commands.NewAdvanceStageCommand(order.StageConfirmed, createdAt.Add(time.Minute))
	require.NoError(t, err)

	store := new(MockOrderStore)
	store.On("Load", ctx).Return(ord, nil).Once()

	h := commands.NewAdvanceStageCommandHandler(store)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, order.Confirmed, updated.Status())
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdvanceStageCommandHandler_Handle_OrderCompleted(t *testing.T) {
	ctx := t.Context()
	createdAt := time.Now()
	ord := makeActiveOrder(t, createdAt)
	require.NoError(t, ord.ApplyStage(order.StageDelivered, createdAt.Add(8*time.Minute)))

	cmd, err := commands.NewAdvanceStageCommand(order.StageConfirmed, createdAt.Add(9*time.Minute))
	require.NoError(t, err)

	store := new(MockOrderStore)
	store.On("Load", ctx).Return(ord, nil).Once()

	h := commands.NewAdvanceStageCommandHandler(store)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.IsCompleted())
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdvanceStageCommandHandler_Handle_SaveError(t *testing.T) {
	ctx := t.Context()
	createdAt := time.Now()
	ord := makeActiveOrder(t, createdAt)
	cmd, err := commands.NewAdvanceStageCommand(order.StageConfirmed, createdAt.Add(30*time.Second))
	require.NoError(t, err)

	store := new(MockOrderStore)
	mock.InOrder(
		store.On("Load", ctx).Return(ord, nil).Once(),
		store.On("Save", ctx, ord).Return(errors.New("save error")).Once(),
	)

	h := commands.NewAdvanceStageCommandHandler(store)
	updated, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOrderNotPersisted)
	// the in-memory transition already happened
	require.NotNil(t, updated)
	assert.Equal(t, order.Confirmed, updated.Status())
}
