package change_reservation_status

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
	changeStatus "github.com/m04kA/SMC-TableService/internal/usecase/change_reservation_status"
)

type fakeUseCase struct {
	got *changeStatus.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *changeStatus.Request) (*changeStatus.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &changeStatus.Response{
		ID:             req.ReservationID,
		TableID:        3,
		Date:           testutil.Date(2025, 6, 10),
		StartTime:      "18:00",
		Status:         req.Status,
		PreviousStatus: domain.ReservationConfirmed,
	}, nil
}

func request(id, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id+"/status", strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"reservationId": id})
}

func TestHandle_Seated(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, testutil.NopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, request("5", `{"status":"active"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ReservationActive, uc.got.Status)
	assert.JSONEq(t,
		`{"id":5,"tableId":3,"date":"2025-06-10","startTime":"18:00","status":"active","previousStatus":"confirmed"}`,
		rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
		err  error
		want int
	}{
		{name: "unknown status", id: "5", body: `{"status":"seated"}`, want: http.StatusBadRequest},
		{name: "bad id", id: "abc", body: `{"status":"active"}`, want: http.StatusBadRequest},
		{name: "not found", id: "5", body: `{"status":"active"}`, err: changeStatus.ErrReservationNotFound, want: http.StatusNotFound},
		{name: "terminal", id: "5", body: `{"status":"active"}`, err: domain.ErrInvalidTransition, want: http.StatusConflict},
		{name: "busy", id: "5", body: `{"status":"active"}`, err: changeStatus.ErrTableBusy, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, testutil.NopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, request(tt.id, tt.body))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
