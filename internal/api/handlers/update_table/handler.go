package update_table

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/service/tables"
	"github.com/m04kA/SMC-TableService/internal/service/tables/models"
)

const (
	msgInvalidTableID     = "некорректный ID стола"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные стола"
	msgNotFound           = "стол не найден"
	msgRetryLater         = "стол сейчас изменяется, повторите попытку"
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

// Handle PUT /api/v1/tables/{tableId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tableID, err := handlers.PathID(r, "tableId")
	if err != nil {
		h.logger.Warn("PUT /tables/{id} - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	var req models.UpdateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tables/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	table, err := h.service.Update(r.Context(), tableID, &req)
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrTableNotFound):
			h.logger.Warn("PUT /tables/{id} - Table not found: table_id=%d", tableID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tables.ErrInvalidInput):
			h.logger.Warn("PUT /tables/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, tables.ErrTableBusy):
			h.logger.Warn("PUT /tables/{id} - Table busy: table_id=%d", tableID)
			handlers.RespondConflict(w, msgRetryLater)

		default:
			h.logger.Error("PUT /tables/{id} - Failed to update table: table_id=%d, error=%v", tableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tables/{id} - Table updated: table_id=%d, status=%s", table.ID, table.Status)
	handlers.RespondJSON(w, http.StatusOK, table)
}
