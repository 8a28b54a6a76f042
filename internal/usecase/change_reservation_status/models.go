package change_reservation_status

import (
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

// Request модель запроса на смену статуса бронирования
type Request struct {
	ReservationID int64
	Status        domain.ReservationStatus
}

// Response модель ответа с бронированием после перехода
type Response struct {
	ID              int64
	ClientID        int64
	ClientName      string
	TableID         int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Guests          int
	Status          domain.ReservationStatus
	PreviousStatus  domain.ReservationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
