package list_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgListFailed  = "не удалось получить бронирования"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	list, err := h.service.ListByDate(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /reservations - Failed to list reservations: date=%s, error=%v", date.Format(domain.DateFormat), err)
		handlers.RespondDomainError(w, err, msgListFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
