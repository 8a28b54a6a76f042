package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-TableService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты (YYYY-MM-DD) или времени начала (HH:MM)"
	msgInvalidInput          = "некорректные данные бронирования"
	msgInvalidStatus         = "бронирование можно создать только в статусе confirmed или active"
	msgTableNotFound         = "стол не найден"
	msgTableUnderMaintenance = "стол на обслуживании"
	msgCapacityExceeded      = "количество гостей превышает вместимость стола"
	msgTableNotAvailable     = "стол занят на выбранное время"
	msgRetryLater            = "стол сейчас изменяется, повторите попытку"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrTableNotAvailable):
			h.logger.Warn("POST /reservations - Table not available: table_id=%d, date=%s, start=%s",
				req.TableID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgTableNotAvailable)

		case errors.Is(err, createReservation.ErrTableNotFound):
			h.logger.Warn("POST /reservations - Table not found: table_id=%d", req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createReservation.ErrTableUnderMaintenance):
			h.logger.Warn("POST /reservations - Table under maintenance: table_id=%d", req.TableID)
			handlers.RespondConflict(w, msgTableUnderMaintenance)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations - Capacity exceeded: table_id=%d, guests=%d", req.TableID, req.Guests)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, createReservation.ErrInvalidStatus):
			h.logger.Warn("POST /reservations - Invalid status: %s", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrTableBusy),
			errors.Is(err, createReservation.ErrConcurrentUpdate):
			h.logger.Warn("POST /reservations - Retryable conflict: table_id=%d, %v", req.TableID, err)
			handlers.RespondConflict(w, msgRetryLater)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: table_id=%d, error=%v", req.TableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, table_id=%d", result.ID, result.TableID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
