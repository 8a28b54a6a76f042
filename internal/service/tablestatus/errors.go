package tablestatus

import "github.com/m04kA/SMC-TableService/internal/domain"

var (
	// ErrTableNotFound стол бронирования отсутствует
	ErrTableNotFound = domain.NotFound("tablestatus: table not found")
	// ErrInternal ошибка хранилища при пересчете статуса
	ErrInternal = domain.Storage("tablestatus: internal error")
)
