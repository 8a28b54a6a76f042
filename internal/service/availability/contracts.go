package availability

import (
	"context"

	"github.com/m04kA/SMC-TableService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	List(ctx context.Context, filter domain.TablesFilter) ([]*domain.Table, error)
}

// Metrics счетчики движка доступности
type Metrics interface {
	IncAvailabilityConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
