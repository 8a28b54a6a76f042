package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientName      string                   // Имя гостя
	TableID         int64                    // ID стола
	Date            time.Time                // Дата бронирования (без времени)
	StartTime       types.TimeString         // Время начала (например, "18:30")
	DurationMinutes int                      // Длительность, кратна 15
	Guests          int                      // Количество гостей
	Status          domain.ReservationStatus // confirmed (по умолчанию) или active для гостей "с улицы"
}

// Response модель ответа с созданным бронированием
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
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
