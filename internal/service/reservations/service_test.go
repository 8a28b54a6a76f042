package reservations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/tablestatus"
	"github.com/m04kA/SMC-TableService/internal/testutil"
)

var (
	day   = testutil.Date(2025, 6, 10)
	clock = testutil.FixedClock{T: testutil.At(2025, 6, 10, 12, 0)}
)

type fixture struct {
	store     *testutil.Store
	locker    *testutil.RecordingLocker
	publisher *testutil.RecordingPublisher
	metrics   *testutil.RecordingMetrics
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		store:     testutil.NewStore(),
		locker:    &testutil.RecordingLocker{},
		publisher: &testutil.RecordingPublisher{},
		metrics:   &testutil.RecordingMetrics{},
	}
	projector := tablestatus.NewProjector(f.store.Tables(), f.store.Reservations(), clock, f.metrics, testutil.NopLogger{})
	f.svc = NewService(f.store.Reservations(), projector, f.locker, &testutil.InlineTx{}, f.publisher, f.metrics, testutil.NopLogger{}).
		WithTimeProvider(clock)
	return f
}

func TestGetByID(t *testing.T) {
	f := newFixture()
	f.store.AddTable(1, 4, "Hall", domain.TableReserved)
	id := f.store.AddReservation(1, day, "22:30", 120, domain.ReservationConfirmed)

	resp, err := f.svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", resp.Date)
	assert.Equal(t, "22:30", resp.StartTime)
	assert.Equal(t, "24:30", resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = f.svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = f.svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByDate_AllStatusesOrdered(t *testing.T) {
	f := newFixture()
	f.store.AddTable(1, 4, "Hall", domain.TableReserved)
	f.store.AddReservation(1, day, "20:00", 60, domain.ReservationConfirmed)
	f.store.AddReservation(1, day, "12:00", 60, domain.ReservationCancelled)
	f.store.AddReservation(1, day.AddDate(0, 0, 1), "12:00", 60, domain.ReservationConfirmed)

	resp, err := f.svc.ListByDate(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 2)
	assert.Equal(t, "12:00", resp.Reservations[0].StartTime)
	assert.Equal(t, "cancelled", resp.Reservations[0].Status)
	assert.Equal(t, "20:00", resp.Reservations[1].StartTime)
}

func TestListByDate_Empty(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.ListByDate(context.Background(), day)
	require.NoError(t, err)
	assert.NotNil(t, resp.Reservations)
	assert.Empty(t, resp.Reservations)
}

func TestDelete_ReleasesTable(t *testing.T) {
	f := newFixture()
	f.store.AddTable(1, 4, "Hall", domain.TableReserved)
	id := f.store.AddReservation(1, day, "20:00", 60, domain.ReservationConfirmed)

	require.NoError(t, f.svc.Delete(context.Background(), id))

	assert.Nil(t, f.store.Reservation(id))
	assert.Equal(t, domain.TableFree, f.store.Table(1).Status)
	assert.Equal(t, [][]int64{{1}}, f.locker.Locked)
	assert.Equal(t, []domain.EventType{domain.EventReservationDeleted}, f.publisher.Types())
	assert.Equal(t, clock.T, f.publisher.Events[0].OccurredAt)
	assert.Equal(t, 1, f.locker.Released)
	assert.Equal(t, 1, f.metrics.WriteCount("delete", "ok"))
}

func TestDelete_KeepsStatusWhileOtherLive(t *testing.T) {
	f := newFixture()
	f.store.AddTable(1, 4, "Hall", domain.TableReserved)
	id := f.store.AddReservation(1, day, "20:00", 60, domain.ReservationConfirmed)
	f.store.AddReservation(1, day, "22:00", 60, domain.ReservationConfirmed)

	require.NoError(t, f.svc.Delete(context.Background(), id))
	assert.Equal(t, domain.TableReserved, f.store.Table(1).Status)
}

func TestDelete_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		err := f.svc.Delete(context.Background(), 5)
		assert.ErrorIs(t, err, ErrReservationNotFound)
		assert.Equal(t, 1, f.metrics.WriteCount("delete", "not_found"))
	})

	t.Run("storage", func(t *testing.T) {
		f := newFixture()
		f.store.Err = errors.New("boom")
		err := f.svc.Delete(context.Background(), 5)
		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.Empty(t, f.publisher.Events)
	})
}
