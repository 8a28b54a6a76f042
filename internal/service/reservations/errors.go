package reservations

import "github.com/m04kA/SMC-TableService/internal/domain"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = domain.NotFound("reservations: reservation not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Validation("reservations: invalid input data")

	// ErrTableBusy возвращается, когда стол заблокирован другой записью дольше таймаута
	ErrTableBusy = domain.Conflict("reservations: table is being modified, retry later")

	// ErrConcurrentUpdate возвращается при конфликте сериализуемой транзакции
	ErrConcurrentUpdate = domain.Conflict("reservations: concurrent update, retry later")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.Storage("reservations: internal error")
)
