package update_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/domain"
	updateReservation "github.com/m04kA/SMC-TableService/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID  = "некорректный ID бронирования"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты (YYYY-MM-DD) или времени начала (HH:MM)"
	msgInvalidInput          = "некорректные данные бронирования"
	msgReservationNotFound   = "бронирование не найдено"
	msgReservationClosed     = "бронирование уже завершено и не может быть изменено"
	msgInvalidTransition     = "недопустимый переход статуса бронирования"
	msgTableNotFound         = "стол не найден"
	msgTableUnderMaintenance = "стол на обслуживании"
	msgCapacityExceeded      = "количество гостей превышает вместимость стола"
	msgTableNotAvailable     = "стол занят на выбранное время"
	msgRetryLater            = "бронирование сейчас изменяется, повторите попытку"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, updateReservation.ErrTableNotFound):
			h.logger.Warn("PUT /reservations/{id} - Table not found: table_id=%d", req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, updateReservation.ErrReservationClosed):
			h.logger.Warn("PUT /reservations/{id} - Reservation closed: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgReservationClosed)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PUT /reservations/{id} - Invalid transition: reservation_id=%d, status=%s", reservationID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, updateReservation.ErrTableNotAvailable):
			h.logger.Warn("PUT /reservations/{id} - Table not available: reservation_id=%d, table_id=%d", reservationID, req.TableID)
			handlers.RespondConflict(w, msgTableNotAvailable)

		case errors.Is(err, updateReservation.ErrTableUnderMaintenance):
			h.logger.Warn("PUT /reservations/{id} - Table under maintenance: table_id=%d", req.TableID)
			handlers.RespondConflict(w, msgTableUnderMaintenance)

		case errors.Is(err, updateReservation.ErrCapacityExceeded):
			h.logger.Warn("PUT /reservations/{id} - Capacity exceeded: table_id=%d, guests=%d", req.TableID, req.Guests)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateReservation.ErrTableBusy),
			errors.Is(err, updateReservation.ErrConcurrentUpdate):
			h.logger.Warn("PUT /reservations/{id} - Retryable conflict: reservation_id=%d, %v", reservationID, err)
			handlers.RespondConflict(w, msgRetryLater)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated: reservation_id=%d, table_id=%d", result.ID, result.TableID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
