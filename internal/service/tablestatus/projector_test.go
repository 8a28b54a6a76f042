package tablestatus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/testutil"
)

var day = testutil.Date(2025, 6, 10)

func newProjector(store *testutil.Store, hour, minute int) (*Projector, *testutil.RecordingMetrics) {
	m := &testutil.RecordingMetrics{}
	clock := testutil.FixedClock{T: testutil.At(2025, 6, 10, hour, minute)}
	return NewProjector(store.Tables(), store.Reservations(), clock, m, testutil.NopLogger{}), m
}

func TestApply_ConfirmedSoonIsOccupied(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableFree)
	id := store.AddReservation(1, day, "18:20", 60, domain.ReservationConfirmed)

	p, m := newProjector(store, 18, 0)
	require.NoError(t, p.Apply(context.Background(), store.Reservation(id)))

	assert.Equal(t, domain.TableOccupied, store.Table(1).Status)
	assert.Equal(t, []string{"occupied"}, m.StatusChanges)
}

func TestApply_ConfirmedLaterIsReserved(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableFree)
	id := store.AddReservation(1, day, "19:00", 60, domain.ReservationConfirmed)

	p, _ := newProjector(store, 18, 0)
	require.NoError(t, p.Apply(context.Background(), store.Reservation(id)))

	assert.Equal(t, domain.TableReserved, store.Table(1).Status)
}

func TestApply_ConfirmedOtherDayIsReserved(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableFree)
	id := store.AddReservation(1, day.AddDate(0, 0, 1), "18:00", 60, domain.ReservationConfirmed)

	p, _ := newProjector(store, 18, 0)
	require.NoError(t, p.Apply(context.Background(), store.Reservation(id)))

	assert.Equal(t, domain.TableReserved, store.Table(1).Status)
}

func TestApply_ActiveIsOccupied(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableReserved)
	id := store.AddReservation(1, day, "12:00", 60, domain.ReservationActive)

	p, _ := newProjector(store, 12, 0)
	require.NoError(t, p.Apply(context.Background(), store.Reservation(id)))

	assert.Equal(t, domain.TableOccupied, store.Table(1).Status)
}

func TestApply_TerminalFreesOnlyWhenNothingElseLive(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableOccupied)
	done := store.AddReservation(1, day, "12:00", 60, domain.ReservationCompleted)
	other := store.AddReservation(1, day, "20:00", 60, domain.ReservationConfirmed)

	p, _ := newProjector(store, 13, 0)
	ctx := context.Background()

	require.NoError(t, p.Apply(ctx, store.Reservation(done)))
	assert.Equal(t, domain.TableOccupied, store.Table(1).Status)
	assert.Empty(t, store.StatusWrites[1])

	require.NoError(t, store.Reservations().UpdateStatus(ctx, other, domain.ReservationCancelled))
	require.NoError(t, p.Apply(ctx, store.Reservation(done)))
	assert.Equal(t, domain.TableFree, store.Table(1).Status)
}

func TestApply_MaintenanceUntouched(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableMaintenance)
	id := store.AddReservation(1, day, "12:00", 60, domain.ReservationActive)

	p, _ := newProjector(store, 12, 0)
	require.NoError(t, p.Apply(context.Background(), store.Reservation(id)))

	assert.Equal(t, domain.TableMaintenance, store.Table(1).Status)
	assert.Empty(t, store.StatusWrites[1])
}

func TestApply_NoWriteWhenUnchanged(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableReserved)
	id := store.AddReservation(1, day, "21:00", 60, domain.ReservationConfirmed)

	p, m := newProjector(store, 12, 0)
	require.NoError(t, p.Apply(context.Background(), store.Reservation(id)))

	assert.Empty(t, store.StatusWrites[1])
	assert.Empty(t, m.StatusChanges)
}

func TestApply_TableMissing(t *testing.T) {
	store := testutil.NewStore()
	p, _ := newProjector(store, 12, 0)

	err := p.Apply(context.Background(), &domain.Reservation{ID: 5, TableID: 42, StartTime: "12:00", Status: domain.ReservationConfirmed})
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_StorageError(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Hall", domain.TableFree)
	id := store.AddReservation(1, day, "12:00", 60, domain.ReservationActive)
	r := store.Reservation(id)
	store.Err = errors.New("boom")

	p, _ := newProjector(store, 12, 0)
	err := p.Apply(context.Background(), r)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestRelease(t *testing.T) {
	t.Run("frees table without live reservations", func(t *testing.T) {
		store := testutil.NewStore()
		store.AddTable(1, 4, "Hall", domain.TableReserved)
		store.AddReservation(1, day, "12:00", 60, domain.ReservationCancelled)

		p, _ := newProjector(store, 10, 0)
		require.NoError(t, p.Release(context.Background(), 1))
		assert.Equal(t, domain.TableFree, store.Table(1).Status)
	})

	t.Run("keeps status while other live reservation remains", func(t *testing.T) {
		store := testutil.NewStore()
		store.AddTable(1, 4, "Hall", domain.TableReserved)
		store.AddReservation(1, day, "20:00", 60, domain.ReservationConfirmed)

		p, _ := newProjector(store, 10, 0)
		require.NoError(t, p.Release(context.Background(), 1))
		assert.Equal(t, domain.TableReserved, store.Table(1).Status)
	})

	t.Run("maintenance untouched", func(t *testing.T) {
		store := testutil.NewStore()
		store.AddTable(1, 4, "Hall", domain.TableMaintenance)

		p, _ := newProjector(store, 10, 0)
		require.NoError(t, p.Release(context.Background(), 1))
		assert.Equal(t, domain.TableMaintenance, store.Table(1).Status)
		assert.Empty(t, store.StatusWrites[1])
	})

	t.Run("already free is not rewritten", func(t *testing.T) {
		store := testutil.NewStore()
		store.AddTable(1, 4, "Hall", domain.TableFree)

		p, _ := newProjector(store, 10, 0)
		require.NoError(t, p.Release(context.Background(), 1))
		assert.Empty(t, store.StatusWrites[1])
	})
}
