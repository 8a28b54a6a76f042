package find_best_slot

import (
	"context"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/reservations/models"
	"github.com/m04kA/SMC-TableService/internal/service/slots"
)

type SlotSearcher interface {
	FindBestSlot(ctx context.Context, q slots.BestSlotQuery) (*domain.SlotSuggestion, error)
	FindBestSlotForEdit(ctx context.Context, q slots.EditSlotQuery) (*domain.SlotSuggestion, error)
}

// ReservationService нужен для поиска при переносе: текущий стол брони
type ReservationService interface {
	GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
