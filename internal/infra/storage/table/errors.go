package table

import "github.com/m04kA/SMC-TableService/internal/domain"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = domain.NotFound("table.repository: table not found")

	// ErrTableReferenced возвращается, когда на стол ссылаются бронирования (нарушение внешнего ключа)
	ErrTableReferenced = domain.Conflict("table.repository: table is referenced by reservations")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = domain.Storage("table.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = domain.Storage("table.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = domain.Storage("table.repository: failed to scan row")
)
