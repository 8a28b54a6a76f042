package update_table

import (
	"context"

	"github.com/m04kA/SMC-TableService/internal/service/tables/models"
)

type TableService interface {
	Update(ctx context.Context, id int64, req *models.UpdateTableRequest) (*models.TableResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
