package commands_test

import (
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceStageCommand_ValidInput(t *testing.T) {
	occurredAt := time.Now()
	cmd, err := commands.NewAdvanceStageCommand(order.StageConfirmed, occurredAt)
	require.NoError(t, err)
	assert.Equal(t, order.StageConfirmed, cmd.Stage())
	assert.Equal(t, occurredAt, cmd.OccurredAt())
}

func TestNewAdvanceStageCommand_InvalidStage(t *testing.T) {
	_, err := commands.NewAdvanceStageCommand(order.Stage(0), time.Now())
	require.Error(t, err)
}

func TestNewAdvanceStageCommand_ZeroOccurredAt(t *testing.T) {
	_, err := commands.NewAdvanceStageCommand(order.StageConfirmed, time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOccurredAtIsRequired)
}

func TestAdvanceStageCommand_ZeroValueValidate(t *testing.T) {
	var cmd commands.AdvanceStageCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAdvanceStageCommandIsNotConstructed)
}
