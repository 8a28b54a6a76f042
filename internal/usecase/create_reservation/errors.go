package create_reservation

import "github.com/m04kA/SMC-TableService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Validation("create_reservation: invalid input data")

	// ErrInvalidStatus возвращается, когда бронь создается не в confirmed/active
	ErrInvalidStatus = domain.Validation("create_reservation: reservation can only be created as confirmed or active")

	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = domain.NotFound("create_reservation: table not found")

	// ErrTableUnderMaintenance возвращается, когда стол на обслуживании
	ErrTableUnderMaintenance = domain.Conflict("create_reservation: table is under maintenance")

	// ErrCapacityExceeded возвращается, когда гостей больше, чем мест за столом
	ErrCapacityExceeded = domain.Validation("create_reservation: guests exceed table capacity")

	// ErrTableNotAvailable возвращается, когда стол занят на запрошенное время
	ErrTableNotAvailable = domain.Conflict("create_reservation: table is not available at this time")

	// ErrTableBusy возвращается, когда стол заблокирован другой записью дольше таймаута
	ErrTableBusy = domain.Conflict("create_reservation: table is being modified, retry later")

	// ErrConcurrentUpdate возвращается при конфликте сериализуемой транзакции
	ErrConcurrentUpdate = domain.Conflict("create_reservation: concurrent update, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.Storage("create_reservation: internal error")
)
