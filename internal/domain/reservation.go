package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableService/pkg/types"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

// LiveStatuses статусы, которые занимают стол и участвуют в проверке пересечений
var LiveStatuses = []ReservationStatus{
	ReservationConfirmed,
	ReservationActive,
}

// IsValid проверяет, что статус входит в закрытый список
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationConfirmed, ReservationActive, ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// IsLive returns true for confirmed and active reservations
func (s ReservationStatus) IsLive() bool {
	return s == ReservationConfirmed || s == ReservationActive
}

// IsTerminal returns true for completed, cancelled and no_show
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled || s == ReservationNoShow
}

// ParseReservationStatus парсит статус бронирования из строки
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown reservation status %q", ErrValidation, s)
	}
	return status, nil
}

// Reservation бронирование стола
type Reservation struct {
	ID              int64
	ClientID        int64
	ClientName      string // заполняется при чтении (join с clients)
	TableID         int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Guests          int
	Status          ReservationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StartMinutes время начала в минутах от полуночи
func (r *Reservation) StartMinutes() (int, error) {
	return r.StartTime.Minutes()
}

// EndMinutes время окончания в минутах от полуночи. Может выходить за 23:00.
func (r *Reservation) EndMinutes() (int, error) {
	start, err := r.StartMinutes()
	if err != nil {
		return 0, err
	}
	return start + r.DurationMinutes, nil
}

// IsLive returns true if the reservation holds its table
func (r *Reservation) IsLive() bool {
	return r.Status.IsLive()
}

// ReservationsFilter фильтр выборки бронирований
type ReservationsFilter struct {
	TableID   *int64
	Date      *time.Time
	Statuses  []ReservationStatus // пусто - все статусы
	ExcludeID *int64
}

// DateOnly отбрасывает время и часовой пояс, оставляя календарный день
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate returns true if both moments fall on the same calendar day
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
