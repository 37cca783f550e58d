package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusBooked, StatusInProgress))
	assert.True(t, CanTransition(StatusBooked, StatusDone))
	assert.True(t, CanTransition(StatusBooked, StatusCancelled))
	assert.True(t, CanTransition(StatusInProgress, StatusDone))
	assert.True(t, CanTransition(StatusInProgress, StatusCancelled))

	// Терминальные статусы не допускают переходов
	assert.False(t, CanTransition(StatusDone, StatusBooked))
	assert.False(t, CanTransition(StatusDone, StatusInProgress))
	assert.False(t, CanTransition(StatusCancelled, StatusBooked))

	// Обратные переходы запрещены
	assert.False(t, CanTransition(StatusInProgress, StatusBooked))
}

func TestCanTransition_SameStatus(t *testing.T) {
	// Пересохранение записи без смены статуса разрешено всегда,
	// в том числе для терминальных статусов
	for _, s := range AllStatuses {
		assert.True(t, CanTransition(s, s), "same-status transition for %s", s)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Booked")
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, s)

	// Регистр не учитывается
	s, err = ParseStatus("done")
	require.NoError(t, err)
	assert.Equal(t, StatusDone, s)

	s, err = ParseStatus("INPROGRESS")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = ParseStatus("Finished")
	require.Error(t, err)

	_, err = ParseStatus("")
	require.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusBooked.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusDone.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}
