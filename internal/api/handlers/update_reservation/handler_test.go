package update_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/testutil"
	updateReservation "github.com/m04kA/SMC-TableService/internal/usecase/update_reservation"
)

type fakeUseCase struct {
	got *updateReservation.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateReservation.Request) (*updateReservation.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	previous := int64(3)
	return &updateReservation.Response{
		ID:              req.ReservationID,
		TableID:         req.TableID,
		PreviousTableID: &previous,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Guests:          req.Guests,
		Status:          domain.ReservationConfirmed,
	}, nil
}

const moveBody = `{"tableId":9,"date":"2025-06-11","startTime":"19:00","durationMinutes":120,"guests":2}`

func request(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/reservations/5", strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"reservationId": "5"})
}

func TestHandle_MoveReportsPreviousTable(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, testutil.NopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, request(moveBody))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), uc.got.ReservationID)
	assert.Equal(t, domain.ReservationStatus(""), uc.got.Status)
	assert.Contains(t, rec.Body.String(), `"previousTableId":3`)
	assert.Contains(t, rec.Body.String(), `"tableId":9`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "missing", err: updateReservation.ErrReservationNotFound, want: http.StatusNotFound},
		{name: "closed", err: updateReservation.ErrReservationClosed, want: http.StatusConflict},
		{name: "bad transition", err: domain.ErrInvalidTransition, want: http.StatusConflict},
		{name: "overlap", err: updateReservation.ErrTableNotAvailable, want: http.StatusConflict},
		{name: "invalid", err: updateReservation.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "storage", err: updateReservation.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, testutil.NopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, request(moveBody))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
