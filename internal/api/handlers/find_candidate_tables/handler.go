package find_candidate_tables

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/service/availability"
	"github.com/m04kA/SMC-TableService/internal/service/tables/models"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidNumber      = "параметры duration и guests должны быть целыми числами"
	msgInvalidReservation = "некорректный ID бронирования"
	msgInvalidQuery       = "некорректные параметры поиска столов"
)

type Handler struct {
	finder CandidateFinder
	logger Logger
}

func NewHandler(finder CandidateFinder, logger Logger) *Handler {
	return &Handler{
		finder: finder,
		logger: logger,
	}
}

// Handle GET /api/v1/candidate-tables
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /candidate-tables - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := handlers.QueryTime(r, "startTime")
	if err != nil || startTime.IsZero() {
		h.logger.Warn("GET /candidate-tables - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /candidate-tables - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumber)
		return
	}
	guests, err := handlers.QueryInt(r, "guests")
	if err != nil {
		h.logger.Warn("GET /candidate-tables - Invalid guests: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumber)
		return
	}

	excludeID, err := handlers.QueryOptionalID(r, "excludeReservationId")
	if err != nil {
		h.logger.Warn("GET /candidate-tables - Invalid excludeReservationId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservation)
		return
	}

	tables, err := h.finder.FindCandidateTables(r.Context(), availability.CandidateQuery{
		Date:                 date,
		StartTime:            startTime,
		DurationMinutes:      duration,
		Guests:               guests,
		ExcludeReservationID: excludeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidQuery):
			h.logger.Warn("GET /candidate-tables - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /candidate-tables - Failed to find tables: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /candidate-tables - Found %d tables: start=%s, guests=%d", len(tables), startTime, guests)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainTableList(tables))
}
