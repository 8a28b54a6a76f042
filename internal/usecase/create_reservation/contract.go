package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/availability"
	"github.com/m04kA/SMC-TableService/pkg/tablelock"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
}

// ClientRepository интерфейс репозитория гостей
type ClientRepository interface {
	GetOrCreate(ctx context.Context, name string) (*domain.Client, error)
}

// AvailabilityChecker повторная проверка занятости стола внутри транзакции
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, q availability.AvailabilityQuery) (bool, error)
}

// StatusProjector пересчет производного статуса стола
type StatusProjector interface {
	Apply(ctx context.Context, reservation *domain.Reservation) error
}

// TableLocker блокировка столов на время записи
type TableLocker interface {
	Lock(ctx context.Context, ids ...int64) (tablelock.UnlockFunc, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ReservationEvent)
}

// Metrics счетчик операций записи
type Metrics interface {
	IncReservationWrite(operation, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
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
