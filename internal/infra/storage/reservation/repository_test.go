package reservation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

type fakeResult struct{ affected int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.affected, nil }

type recordingExecutor struct {
	DBExecutor
	query    string
	args     []interface{}
	affected int64
}

func (e *recordingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query = query
	e.args = args
	return fakeResult{affected: e.affected}, nil
}

func TestRepository_Update(t *testing.T) {
	exec := &recordingExecutor{affected: 1}
	repo := NewRepository(exec)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	err := repo.Update(context.Background(), &domain.Reservation{
		ID:              11,
		TableID:         4,
		Date:            date,
		StartTime:       types.TimeString("18:00"),
		DurationMinutes: 90,
		Guests:          3,
		Status:          domain.ReservationConfirmed,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE reservations SET table_id = $1, reservation_date = $2, start_time = $3, duration_minutes = $4, "+
			"guests = $5, status = $6, updated_at = NOW() WHERE id = $7",
		exec.query)
	assert.Equal(t, int64(11), exec.args[6])
}

func TestRepository_DeleteNotFound(t *testing.T) {
	repo := NewRepository(&recordingExecutor{affected: 0})

	err := repo.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_UpdateStatus(t *testing.T) {
	exec := &recordingExecutor{affected: 1}
	repo := NewRepository(exec)

	require.NoError(t, repo.UpdateStatus(context.Background(), 5, domain.ReservationActive))
	assert.Equal(t, []interface{}{domain.ReservationActive, int64(5)}, exec.args)
}
