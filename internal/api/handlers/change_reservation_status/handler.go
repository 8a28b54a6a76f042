package change_reservation_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/domain"
	changeStatus "github.com/m04kA/SMC-TableService/internal/usecase/change_reservation_status"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStatus        = "некорректный статус бронирования"
	msgReservationNotFound  = "бронирование не найдено"
	msgInvalidTransition    = "недопустимый переход статуса бронирования"
	msgRetryLater           = "бронирование сейчас изменяется, повторите попытку"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	status, err := domain.ParseReservationStatus(req.Status)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid status: %q", req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &changeStatus.Request{
		ReservationID: reservationID,
		Status:        status,
	})
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid transition: reservation_id=%d, to=%s", reservationID, status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, changeStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, changeStatus.ErrTableBusy),
			errors.Is(err, changeStatus.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /reservations/{id}/status - Retryable conflict: reservation_id=%d, %v", reservationID, err)
			handlers.RespondConflict(w, msgRetryLater)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed to change status: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status changed: reservation_id=%d, %s -> %s",
		result.ID, result.PreviousStatus, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
