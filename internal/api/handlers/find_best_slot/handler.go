package find_best_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/reservations"
	"github.com/m04kA/SMC-TableService/internal/service/slots"
)

const (
	msgInvalidDate          = "некорректный формат даты startDate, ожидается YYYY-MM-DD"
	msgInvalidNumber        = "параметры guests, duration и horizonDays должны быть целыми числами"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgReservationNotFound  = "бронирование не найдено"
	msgInvalidQuery         = "некорректные параметры поиска: длительность 15-180 минут с шагом 15, горизонт 1-90 дней"
)

type Handler struct {
	searcher     SlotSearcher
	reservations ReservationService
	logger       Logger
}

func NewHandler(searcher SlotSearcher, reservations ReservationService, logger Logger) *Handler {
	return &Handler{
		searcher:     searcher,
		reservations: reservations,
		logger:       logger,
	}
}

// Handle GET /api/v1/slots/best
// С параметром reservationId ищет слот для переноса брони: сама бронь не мешает,
// на каждом времени первым пробуется её текущий стол.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /slots/best - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	guests, err := handlers.QueryInt(r, "guests")
	if err != nil {
		h.logger.Warn("GET /slots/best - Invalid guests: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumber)
		return
	}
	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /slots/best - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumber)
		return
	}
	horizon, err := handlers.QueryOptionalInt(r, "horizonDays")
	if err != nil {
		h.logger.Warn("GET /slots/best - Invalid horizon: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumber)
		return
	}
	reservationID, err := handlers.QueryOptionalID(r, "reservationId")
	if err != nil {
		h.logger.Warn("GET /slots/best - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	query := slots.BestSlotQuery{
		StartDate:       startDate,
		Guests:          guests,
		DurationMinutes: duration,
	}
	if horizon != nil {
		if *horizon <= 0 {
			h.logger.Warn("GET /slots/best - Non-positive horizon: %d", *horizon)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		query.HorizonDays = *horizon
	}

	var suggestion *domain.SlotSuggestion
	if reservationID == nil {
		suggestion, err = h.searcher.FindBestSlot(r.Context(), query)
	} else {
		suggestion, err = h.findForEdit(r, query, *reservationID)
	}
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /slots/best - Reservation not found: reservation_id=%d", *reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, slots.ErrInvalidQuery):
			h.logger.Warn("GET /slots/best - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /slots/best - Failed to find slot: start_date=%s, error=%v",
				startDate.Format(domain.DateFormat), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSuggestion(suggestion))
}

func (h *Handler) findForEdit(r *http.Request, query slots.BestSlotQuery, reservationID int64) (*domain.SlotSuggestion, error) {
	current, err := h.reservations.GetByID(r.Context(), reservationID)
	if err != nil {
		return nil, err
	}

	return h.searcher.FindBestSlotForEdit(r.Context(), slots.EditSlotQuery{
		BestSlotQuery:  query,
		ReservationID:  reservationID,
		CurrentTableID: current.TableID,
	})
}
