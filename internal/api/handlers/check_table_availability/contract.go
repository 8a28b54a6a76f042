package check_table_availability

import (
	"context"

	"github.com/m04kA/SMC-TableService/internal/service/availability"
)

type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, q availability.AvailabilityQuery) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
