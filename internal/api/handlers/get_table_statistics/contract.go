package get_table_statistics

import (
	"context"

	"github.com/m04kA/SMC-TableService/internal/service/tables/models"
)

type TableService interface {
	Statistics(ctx context.Context) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
