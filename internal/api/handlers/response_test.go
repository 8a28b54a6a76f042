package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableService/internal/domain"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: domain.Validation("x"), want: http.StatusBadRequest},
		{name: "wrapped not found", err: fmt.Errorf("%w: op", domain.NotFound("x")), want: http.StatusNotFound},
		{name: "conflict", err: domain.ErrInvalidTransition, want: http.StatusConflict},
		{name: "storage", err: domain.Storage("x"), want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestRespondDomainError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, domain.Storage("pq: connection refused"), "что-то")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, msgInternalError, body.Error)
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"tableId": "12"})
	id, err := PathID(req, "tableId")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"tableId": "-1"})
	_, err = PathID(req, "tableId")
	assert.Error(t, err)
}

func TestQueryParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?date=2025-06-10&startTime=9:15&guests=4&horizonDays=", nil)

	date, err := QueryDate(req, "date")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", date.Format(domain.DateFormat))

	start, err := QueryTime(req, "startTime")
	require.NoError(t, err)
	assert.Equal(t, "09:15", start.String())

	guests, err := QueryInt(req, "guests")
	require.NoError(t, err)
	assert.Equal(t, 4, guests)

	horizon, err := QueryOptionalInt(req, "horizonDays")
	require.NoError(t, err)
	assert.Nil(t, horizon)

	_, err = QueryInt(req, "duration")
	assert.ErrorIs(t, err, ErrMissingParam)
}
