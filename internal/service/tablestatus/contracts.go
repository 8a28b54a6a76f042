package tablestatus

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
)

// TableRepository интерфейс для работы со столами
type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	SetStatus(ctx context.Context, id int64, status domain.TableStatus) error
}

// ReservationRepository интерфейс для проверки оставшихся бронирований стола
type ReservationRepository interface {
	HasLiveReservations(ctx context.Context, tableID int64, excludeID *int64) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics счетчик записей статуса стола
type Metrics interface {
	IncTableStatusChange(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
