package delete_table

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/service/tables"
)

const (
	msgInvalidTableID  = "некорректный ID стола"
	msgNotFound        = "стол не найден"
	msgHasReservations = "у стола есть бронирования на сегодня или позже"
	msgRetryLater      = "стол сейчас изменяется, повторите попытку"
)

type Handler struct {
	service TableService
	logger  Logger
}

func NewHandler(service TableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/tables/{tableId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tableID, err := handlers.PathID(r, "tableId")
	if err != nil {
		h.logger.Warn("DELETE /tables/{id} - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	if err := h.service.Delete(r.Context(), tableID); err != nil {
		switch {
		case errors.Is(err, tables.ErrTableNotFound):
			h.logger.Warn("DELETE /tables/{id} - Table not found: table_id=%d", tableID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tables.ErrTableHasReservations):
			h.logger.Warn("DELETE /tables/{id} - Table has reservations: table_id=%d", tableID)
			handlers.RespondConflict(w, msgHasReservations)

		case errors.Is(err, tables.ErrTableBusy):
			h.logger.Warn("DELETE /tables/{id} - Table busy: table_id=%d", tableID)
			handlers.RespondConflict(w, msgRetryLater)

		default:
			h.logger.Error("DELETE /tables/{id} - Failed to delete table: table_id=%d, error=%v", tableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /tables/{id} - Table deleted: table_id=%d", tableID)
	handlers.RespondNoContent(w)
}
