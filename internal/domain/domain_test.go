package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservation_EndMinutes(t *testing.T) {
	r := &Reservation{StartTime: "22:45", DurationMinutes: 120}

	end, err := r.EndMinutes()
	require.NoError(t, err)
	assert.Equal(t, 24*60+45, end)
}

func TestReservationStatus(t *testing.T) {
	assert.True(t, ReservationConfirmed.IsLive())
	assert.True(t, ReservationActive.IsLive())
	assert.False(t, ReservationCancelled.IsLive())
	assert.True(t, ReservationNoShow.IsTerminal())
	assert.False(t, ReservationActive.IsTerminal())

	_, err := ParseReservationStatus("pending")
	assert.ErrorIs(t, err, ErrValidation)

	s, err := ParseReservationStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, ReservationNoShow, s)
}

func TestTable(t *testing.T) {
	table := &Table{Capacity: 4, Status: TableMaintenance}
	assert.True(t, table.IsUnderMaintenance())
	assert.True(t, table.CanSeat(4))
	assert.False(t, table.CanSeat(5))

	_, err := ParseTableStatus("broken")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewTableStatistics(t *testing.T) {
	stats := NewTableStatistics(map[TableStatus]int{
		TableFree:        2,
		TableOccupied:    3,
		TableReserved:    1,
		TableMaintenance: 2,
	})

	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 6, stats.TotalActive)
	assert.Equal(t, 4, stats.Busy)
	assert.InDelta(t, 66.666, stats.LoadPercentage, 0.01)

	empty := NewTableStatistics(map[TableStatus]int{TableMaintenance: 3})
	assert.Equal(t, 0.0, empty.LoadPercentage)
}

func TestSameDate(t *testing.T) {
	a := time.Date(2025, 6, 10, 23, 59, 0, 0, time.Local)
	b := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, b.AddDate(0, 0, 1)))
}

func TestKindErrors(t *testing.T) {
	errTaken := Conflict("create_reservation: table is not available")
	assert.True(t, errors.Is(errTaken, ErrConflict))
	assert.False(t, errors.Is(errTaken, ErrNotFound))
	assert.Equal(t, "create_reservation: table is not available", errTaken.Error())

	assert.ErrorIs(t, Validation("x"), ErrValidation)
	assert.ErrorIs(t, NotFound("x"), ErrNotFound)
	assert.ErrorIs(t, Storage("x"), ErrStorage)
}

func TestSlotSuggestion_BestTable(t *testing.T) {
	var none *SlotSuggestion
	assert.Nil(t, none.BestTable())

	s := &SlotSuggestion{Tables: []*Table{{ID: 7}, {ID: 3}}}
	assert.Equal(t, int64(7), s.BestTable().ID)
}
