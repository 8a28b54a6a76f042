package list_tables

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableService/internal/api/handlers"
	"github.com/m04kA/SMC-TableService/internal/service/tables"
	"github.com/m04kA/SMC-TableService/internal/service/tables/models"
)

const msgInvalidMinCapacity = "minCapacity должен быть положительным целым числом"

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

// Handle GET /api/v1/tables?zone=&minCapacity=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	minCapacity, err := handlers.QueryOptionalInt(r, "minCapacity")
	if err != nil {
		h.logger.Warn("GET /tables - Invalid minCapacity: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMinCapacity)
		return
	}

	req := &models.ListTablesRequest{MinCapacity: minCapacity}
	if zone := r.URL.Query().Get("zone"); zone != "" {
		req.Zone = &zone
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrInvalidInput):
			h.logger.Warn("GET /tables - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMinCapacity)

		default:
			h.logger.Error("GET /tables - Failed to list tables: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
