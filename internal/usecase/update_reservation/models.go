package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

// Request модель запроса на изменение бронирования.
// Все поля, кроме Status, обязательны: это полная перезапись.
type Request struct {
	ReservationID   int64
	TableID         int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Guests          int
	Status          domain.ReservationStatus // пусто - статус не меняется
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64
	ClientID        int64
	ClientName      string
	TableID         int64
	PreviousTableID *int64 // заполнен, если бронь пересела за другой стол
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Guests          int
	Status          domain.ReservationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
