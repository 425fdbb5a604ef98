package commands_test

import (
	"errors"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseClearPolicy(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    commands.ClearPolicy
		wantErr bool
	}{
		{name: "empty defaults to completed-only", value: "", want: commands.ClearCompletedOnly},
		{name: "completed-only", value: "completed-only", want: commands.ClearCompletedOnly},
		{name: "anytime", value: "anytime", want: commands.ClearAnytime},
		{name: "unknown value", value: "whenever", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := commands.ParseClearPolicy(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, commands.ErrClearPolicyIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClearOrderCommand_ZeroValueValidate(t *testing.T) {
	var cmd commands.ClearOrderCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrClearOrderCommandIsNotConstructed)
}

func TestClearOrderCommandHandler_Handle_CompletedOrder(t *testing.T) {
	ctx := t.Context()
	createdAt := time.Now()
	ord := makeActiveOrder(t, createdAt)
	require.NoError(t, ord.ApplyStage(order.StageDelivered, createdAt.Add(8*time.Minute)))

	cmd, err := commands.NewClearOrderCommand()
	require.NoError(t, err)

	store := new(MockOrderStore)
	mock.InOrder(
		store.On("Load", ctx).Return(ord, nil).Once(),
		store.On("Clear", ctx).Return(nil).Once(),
	)

	h := commands.NewClearOrderCommandHandler(store, commands.ClearCompletedOnly)
	require.NoError(t, h.Handle(ctx, cmd))
	store.AssertExpectations(t)
}

func TestClearOrderCommandHandler_Handle_NoActiveOrder(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClearOrderCommand()
	require.NoError(t, err)

	store := new(MockOrderStore)
	mock.InOrder(
		store.On("Load", ctx).Return(nil, nil).Once(),
		store.On("Clear", ctx).Return(nil).Once(),
	)

	h := commands.NewClearOrderCommandHandler(store, commands.ClearCompletedOnly)
	require.NoError(t, h.Handle(ctx, cmd))
	store.AssertExpectations(t)
}

func TestClearOrderCommandHandler_Handle_MidFlightRejected(t *testing.T) {
	ctx := t.Context()
	ord := makeActiveOrder(t, time.Now())

	cmd, err := commands.NewClearOrderCommand()
	require.NoError(t, err)

	store := new(MockOrderStore)
	store.On("Load", ctx).Return(ord, nil).Once()

	h := commands.NewClearOrderCommandHandler(store, commands.ClearCompletedOnly)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOrderStillActive)
	store.AssertNotCalled(t, "Clear", mock.Anything)
}

func TestClearOrderCommandHandler_Handle_MidFlightAllowedAnytime(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewClearOrderCommand()
	require.NoError(t, err)

	store := new(MockOrderStore)
	store.On("Clear", ctx).Return(nil).Once()

	h := commands.NewClearOrderCommandHandler(store, commands.ClearAnytime)
	require.NoError(t, h.Handle(ctx, cmd))
	store.AssertNotCalled(t, "Load", mock.Anything)
	store.AssertExpectations(t)
}

func TestClearOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ClearOrderCommand{} // not constructed properly
	store := new(MockOrderStore)
	h := commands.NewClearOrderCommandHandler(store, commands.ClearCompletedOnly)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestClearOrderCommandHandler_Handle_LoadError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClearOrderCommand()
	require.NoError(t, err)

	store := new(MockOrderStore)
	store.On("Load", ctx).Return(nil, errors.New("load error")).Once()

	h := commands.NewClearOrderCommandHandler(store, commands.ClearCompletedOnly)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	store.AssertNotCalled(t, "Clear", mock.Anything)
}
