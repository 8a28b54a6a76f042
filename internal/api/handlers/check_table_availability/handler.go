package check_table_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/availability"
)

const (
	msgInvalidTableID     = "некорректный ID стола"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidDuration    = "некорректная длительность"
	msgInvalidReservation = "некорректный ID бронирования"
	msgInvalidQuery       = "некорректные параметры проверки: время должно быть на сетке 10:00-23:00, длительность кратна 15"
)

type Handler struct {
	checker AvailabilityChecker
	logger  Logger
}

func NewHandler(checker AvailabilityChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle GET /api/v1/tables/{tableId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tableID, err := handlers.PathID(r, "tableId")
	if err != nil {
		h.logger.Warn("GET /tables/{id}/availability - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /tables/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := handlers.QueryTime(r, "startTime")
	if err != nil || startTime.IsZero() {
		h.logger.Warn("GET /tables/{id}/availability - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /tables/{id}/availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	excludeID, err := handlers.QueryOptionalID(r, "excludeReservationId")
	if err != nil {
		h.logger.Warn("GET /tables/{id}/availability - Invalid excludeReservationId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservation)
		return
	}

	available, err := h.checker.IsAvailable(r.Context(), availability.AvailabilityQuery{
		TableID:              tableID,
		Date:                 date,
		StartTime:            startTime,
		DurationMinutes:      duration,
		ExcludeReservationID: excludeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidQuery):
			h.logger.Warn("GET /tables/{id}/availability - Invalid query: table_id=%d, %v", tableID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /tables/{id}/availability - Failed to check availability: table_id=%d, error=%v", tableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
		TableID:         tableID,
		Date:            date.Format(domain.DateFormat),
		StartTime:       startTime.String(),
		DurationMinutes: duration,
		Available:       available,
	})
}
