package tables

import "github.com/m04kA/SMC-TableService/internal/domain"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = domain.NotFound("tables: table not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Validation("tables: invalid input data")

	// ErrTableHasReservations возвращается при удалении стола с предстоящими бронированиями
	ErrTableHasReservations = domain.Conflict("tables: table has upcoming reservations")

	// ErrTableBusy возвращается, когда стол заблокирован другой записью дольше таймаута
	ErrTableBusy = domain.Conflict("tables: table is being modified, retry later")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.Storage("tables: internal error")
)
