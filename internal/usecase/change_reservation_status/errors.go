package change_reservation_status

import "github.com/m04kA/SMC-TableService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Validation("change_reservation_status: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = domain.NotFound("change_reservation_status: reservation not found")

	// ErrTableBusy возвращается, когда стол заблокирован другой записью дольше таймаута
	ErrTableBusy = domain.Conflict("change_reservation_status: table is being modified, retry later")

	// ErrConcurrentUpdate возвращается, когда бронь изменили параллельно
	ErrConcurrentUpdate = domain.Conflict("change_reservation_status: concurrent update, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.Storage("change_reservation_status: internal error")
)
