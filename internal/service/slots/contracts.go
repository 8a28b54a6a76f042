package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableService/internal/service/availability"
)

// DayLoader снимок зала на дату
type DayLoader interface {
	LoadDay(ctx context.Context, date time.Time, excludeReservationID *int64) (*availability.DayPlan, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics счетчики поиска слотов
type Metrics interface {
	IncSlotSearch(kind string, found bool)
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
