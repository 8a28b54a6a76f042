package update_reservation

import "github.com/m04kA/SMC-TableService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Validation("update_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = domain.NotFound("update_reservation: reservation not found")

	// ErrReservationClosed возвращается при попытке изменить завершенное бронирование
	ErrReservationClosed = domain.Conflict("update_reservation: reservation is already closed")

	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = domain.NotFound("update_reservation: table not found")

	// ErrTableUnderMaintenance возвращается, когда стол на обслуживании
	ErrTableUnderMaintenance = domain.Conflict("update_reservation: table is under maintenance")

	// ErrCapacityExceeded возвращается, когда гостей больше, чем мест за столом
	ErrCapacityExceeded = domain.Validation("update_reservation: guests exceed table capacity")

	// ErrTableNotAvailable возвращается, когда стол занят на запрошенное время
	ErrTableNotAvailable = domain.Conflict("update_reservation: table is not available at this time")

	// ErrTableBusy возвращается, когда стол заблокирован другой записью дольше таймаута
	ErrTableBusy = domain.Conflict("update_reservation: table is being modified, retry later")

	// ErrConcurrentUpdate возвращается, когда бронь изменили параллельно
	ErrConcurrentUpdate = domain.Conflict("update_reservation: concurrent update, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.Storage("update_reservation: internal error")
)
