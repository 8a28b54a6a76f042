package find_nearest_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/slots"
	"github.com/m04kA/SMC-TableService/internal/timegrid"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime   = "некорректный формат времени from, ожидается HH:MM"
	msgInvalidNumber = "параметры guests и duration должны быть целыми числами"
	msgInvalidQuery  = "некорректные параметры поиска: длительность 15-180 минут с шагом 15, гостей больше нуля"
)

type Handler struct {
	searcher     SlotSearcher
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(searcher SlotSearcher, logger Logger) *Handler {
	return &Handler{
		searcher:     searcher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (h *Handler) WithTimeProvider(tp TimeProvider) *Handler {
	h.timeProvider = tp
	return h
}

// Handle GET /api/v1/slots/nearest
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /slots/nearest - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	guests, err := handlers.QueryInt(r, "guests")
	if err != nil {
		h.logger.Warn("GET /slots/nearest - Invalid guests: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumber)
		return
	}
	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /slots/nearest - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNumber)
		return
	}

	from, err := handlers.QueryTime(r, "from")
	if err != nil {
		h.logger.Warn("GET /slots/nearest - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	if from.IsZero() {
		from = timegrid.RoundToGrid(h.timeProvider.Now())
	}

	slot, err := h.searcher.FindNearestSlot(r.Context(), slots.NearestSlotQuery{
		Date:            date,
		Guests:          guests,
		DurationMinutes: duration,
		From:            from,
	})
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidQuery):
			h.logger.Warn("GET /slots/nearest - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /slots/nearest - Failed to find slot: date=%s, error=%v", date.Format(domain.DateFormat), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := &NearestSlotResponse{
		Date: date.Format(domain.DateFormat),
		From: from.String(),
	}
	if slot != nil {
		s := slot.String()
		resp.Found = true
		resp.StartTime = &s
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
