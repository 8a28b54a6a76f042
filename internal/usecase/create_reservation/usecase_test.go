package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/availability"
	"github.com/m04kA/SMC-TableService/internal/service/tablestatus"
	"github.com/m04kA/SMC-TableService/internal/testutil"
	"github.com/m04kA/SMC-TableService/pkg/tablelock"
	"github.com/m04kA/SMC-TableService/pkg/txmanager"
)

var day = testutil.Date(2025, 6, 10)

type fixture struct {
	store     *testutil.Store
	locker    *testutil.RecordingLocker
	tx        *testutil.InlineTx
	publisher *testutil.RecordingPublisher
	metrics   *testutil.RecordingMetrics
	uc        *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		store:     testutil.NewStore(),
		locker:    &testutil.RecordingLocker{},
		tx:        &testutil.InlineTx{},
		publisher: &testutil.RecordingPublisher{},
		metrics:   &testutil.RecordingMetrics{},
	}
	clock := testutil.FixedClock{T: now}
	checker := availability.NewChecker(f.store.Reservations(), f.store.Tables(), f.metrics, testutil.NopLogger{})
	projector := tablestatus.NewProjector(f.store.Tables(), f.store.Reservations(), clock, f.metrics, testutil.NopLogger{})

	f.uc = NewUseCase(
		f.store.Reservations(),
		f.store.Tables(),
		f.store.Clients(),
		checker,
		projector,
		f.locker,
		f.tx,
		f.publisher,
		f.metrics,
		testutil.NopLogger{},
	).WithTimeProvider(clock)
	return f
}

func validRequest() *Request {
	return &Request{
		ClientName:      "Anna",
		TableID:         1,
		Date:            day,
		StartTime:       "19:00",
		DurationMinutes: 90,
		Guests:          2,
	}
}

func TestExecute_CreatesConfirmedAndReservesTable(t *testing.T) {
	f := newFixture(testutil.At(2025, 6, 10, 12, 0))
	f.store.AddTable(1, 4, "Patio", domain.TableFree)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, domain.ReservationConfirmed, resp.Status)
	assert.Equal(t, "Anna", resp.ClientName)
	assert.Equal(t, domain.TableReserved, f.store.Table(1).Status)

	assert.Equal(t, [][]int64{{1}}, f.locker.Locked)
	assert.Equal(t, 1, f.locker.Released)
	assert.Equal(t, 1, f.tx.Calls)
	assert.Equal(t, []domain.EventType{domain.EventReservationCreated}, f.publisher.Types())
	assert.Equal(t, resp.ID, f.publisher.Events[0].ReservationID)
	assert.Equal(t, 1, f.metrics.WriteCount(operation, "ok"))
}

func TestExecute_SoonConfirmedOccupiesTable(t *testing.T) {
	f := newFixture(testutil.At(2025, 6, 10, 18, 45))
	f.store.AddTable(1, 4, "Patio", domain.TableFree)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.TableOccupied, f.store.Table(1).Status)
}

func TestExecute_WalkInIsActive(t *testing.T) {
	f := newFixture(testutil.At(2025, 6, 10, 19, 0))
	f.store.AddTable(1, 4, "Patio", domain.TableFree)

	req := validRequest()
	req.Status = domain.ReservationActive

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationActive, resp.Status)
	assert.Equal(t, domain.TableOccupied, f.store.Table(1).Status)
}

func TestExecute_RejectsTerminalInitialStatus(t *testing.T) {
	f := newFixture(testutil.At(2025, 6, 10, 12, 0))
	f.store.AddTable(1, 4, "Patio", domain.TableFree)

	req := validRequest()
	req.Status = domain.ReservationCompleted

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, f.locker.Locked)
}

func TestExecute_OverlapIsRejected(t *testing.T) {
	f := newFixture(testutil.At(2025, 6, 10, 12, 0))
	f.store.AddTable(1, 4, "Patio", domain.TableReserved)
	f.store.AddReservation(1, day, "18:00", 90, domain.ReservationConfirmed)

	req := validRequest()
	req.StartTime = "19:29"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTableNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.store.ReservationCount())
	assert.Empty(t, f.publisher.Events)
	assert.Equal(t, 1, f.locker.Released)
	assert.Equal(t, 1, f.metrics.WriteCount(operation, "conflict"))

	req.StartTime = "19:30"
	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.ReservationCount())
}

func TestExecute_TableChecks(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(s *testutil.Store)
		guests  int
		wantErr error
	}{
		{
			name:    "missing table",
			setup:   func(s *testutil.Store) {},
			guests:  2,
			wantErr: ErrTableNotFound,
		},
		{
			name:    "maintenance",
			setup:   func(s *testutil.Store) { s.AddTable(1, 4, "Bar", domain.TableMaintenance) },
			guests:  2,
			wantErr: ErrTableUnderMaintenance,
		},
		{
			name:    "too many guests",
			setup:   func(s *testutil.Store) { s.AddTable(1, 4, "Bar", domain.TableFree) },
			guests:  5,
			wantErr: ErrCapacityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(testutil.At(2025, 6, 10, 12, 0))
			tt.setup(f.store)

			req := validRequest()
			req.Guests = tt.guests

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.store.ReservationCount())
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{name: "empty name", modify: func(r *Request) { r.ClientName = "   " }},
		{name: "no table", modify: func(r *Request) { r.TableID = 0 }},
		{name: "no date", modify: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad time", modify: func(r *Request) { r.StartTime = "7pm" }},
		{name: "before opening", modify: func(r *Request) { r.StartTime = "09:45" }},
		{name: "after closing", modify: func(r *Request) { r.StartTime = "23:00" }},
		{name: "duration not multiple of 15", modify: func(r *Request) { r.DurationMinutes = 50 }},
		{name: "duration too long", modify: func(r *Request) { r.DurationMinutes = 195 }},
		{name: "no guests", modify: func(r *Request) { r.Guests = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(testutil.At(2025, 6, 10, 12, 0))
			f.store.AddTable(1, 4, "Patio", domain.TableFree)

			req := validRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, f.locker.Locked)
			assert.Equal(t, 1, f.metrics.WriteCount(operation, "invalid"))
		})
	}
}

func TestExecute_OffGridStartIsAccepted(t *testing.T) {
	f := newFixture(testutil.At(2025, 6, 10, 12, 0))
	f.store.AddTable(1, 4, "Patio", domain.TableFree)

	req := validRequest()
	req.StartTime = "19:10"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "19:10", resp.StartTime.String())
}

func TestExecute_LockTimeout(t *testing.T) {
	f := newFixture(testutil.At(2025, 6, 10, 12, 0))
	f.store.AddTable(1, 4, "Patio", domain.TableFree)
	f.locker.Err = tablelock.ErrLockTimeout

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTableBusy)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, f.tx.Calls)
}

func TestExecute_SerializationFailure(t *testing.T) {
	f := newFixture(testutil.At(2025, 6, 10, 12, 0))
	f.store.AddTable(1, 4, "Patio", domain.TableFree)
	f.tx.Err = fmt.Errorf("%w: commit", txmanager.ErrSerialization)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.publisher.Events)
	assert.Equal(t, 1, f.locker.Released)
}

func TestExecute_StorageError(t *testing.T) {
	f := newFixture(testutil.At(2025, 6, 10, 12, 0))
	f.store.AddTable(1, 4, "Patio", domain.TableFree)
	f.store.Err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, 1, f.metrics.WriteCount(operation, "error"))
}

func TestExecute_SameClientReused(t *testing.T) {
	f := newFixture(testutil.At(2025, 6, 10, 12, 0))
	f.store.AddTable(1, 4, "Patio", domain.TableFree)
	f.store.AddTable(2, 4, "Patio", domain.TableFree)

	first, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.TableID = 2
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ClientID, second.ClientID)
}

// gatedPublisher задерживает первую публикацию до закрытия release
type gatedPublisher struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (p *gatedPublisher) Publish(context.Context, domain.ReservationEvent) {
	first := false
	p.once.Do(func() { first = true })
	if !first {
		return
	}
	close(p.entered)
	<-p.release
}

func TestExecute_SlowPublishDoesNotHoldTableLock(t *testing.T) {
	store := testutil.NewStore()
	store.AddTable(1, 4, "Patio", domain.TableFree)
	clock := testutil.FixedClock{T: testutil.At(2025, 6, 10, 10, 0)}
	metrics := &testutil.RecordingMetrics{}
	publisher := &gatedPublisher{entered: make(chan struct{}), release: make(chan struct{})}

	uc := NewUseCase(
		store.Reservations(),
		store.Tables(),
		store.Clients(),
		availability.NewChecker(store.Reservations(), store.Tables(), metrics, testutil.NopLogger{}),
		tablestatus.NewProjector(store.Tables(), store.Reservations(), clock, metrics, testutil.NopLogger{}),
		tablelock.WithTimeout(tablelock.NewLocalLocker(), 100*time.Millisecond),
		&testutil.InlineTx{},
		publisher,
		metrics,
		testutil.NopLogger{},
	).WithTimeProvider(clock)

	lunch := validRequest()
	lunch.StartTime = "12:00"

	firstDone := make(chan error, 1)
	go func() {
		_, err := uc.Execute(context.Background(), lunch)
		firstDone <- err
	}()
	<-publisher.entered

	// первая бронь висит в публикации, стол 1 уже должен быть свободен для записи
	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	close(publisher.release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 2, store.ReservationCount())
}
