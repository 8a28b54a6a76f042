package tables

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/tablelock"
)

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	List(ctx context.Context, filter domain.TablesFilter) ([]*domain.Table, error)
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	Create(ctx context.Context, table *domain.Table) (*domain.Table, error)
	Update(ctx context.Context, table *domain.Table) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[domain.TableStatus]int, error)
	Zones(ctx context.Context) ([]string, error)
}

// ReservationRepository интерфейс для проверки броней стола перед удалением
type ReservationRepository interface {
	HasUpcomingReservations(ctx context.Context, tableID int64, fromDate time.Time) (bool, error)
}

// TableLocker блокировка стола на время изменения
type TableLocker interface {
	Lock(ctx context.Context, ids ...int64) (tablelock.UnlockFunc, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
