package find_nearest_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableService/internal/service/slots"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

type SlotSearcher interface {
	FindNearestSlot(ctx context.Context, q slots.NearestSlotQuery) (*types.TimeString, error)
}

// TimeProvider нужен для значения from по умолчанию
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
