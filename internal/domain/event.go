package domain

import (
	"time"

	"github.com/m04kA/SMC-TableService/pkg/types"
)

// EventType тип события жизненного цикла бронирования
type EventType string

const (
	EventReservationCreated       EventType = "reservation.created"
	EventReservationUpdated       EventType = "reservation.updated"
	EventReservationStatusChanged EventType = "reservation.status_changed"
	EventReservationDeleted       EventType = "reservation.deleted"
)

// ReservationEvent событие, публикуемое после успешного commit
type ReservationEvent struct {
	ID              string            `json:"id"`
	Type            EventType         `json:"type"`
	ReservationID   int64             `json:"reservationId"`
	TableID         int64             `json:"tableId"`
	PreviousTableID *int64            `json:"previousTableId,omitempty"`
	Date            string            `json:"date"`
	StartTime       types.TimeString  `json:"startTime"`
	DurationMinutes int               `json:"durationMinutes"`
	Guests          int               `json:"guests"`
	Status          ReservationStatus `json:"status"`
	OccurredAt      time.Time         `json:"occurredAt"`
}

// NewReservationEvent собирает событие по состоянию брони. ID назначает публикатор.
func NewReservationEvent(eventType EventType, r *Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:            eventType,
		ReservationID:   r.ID,
		TableID:         r.TableID,
		Date:            r.Date.Format(DateFormat),
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Guests:          r.Guests,
		Status:          r.Status,
		OccurredAt:      at,
	}
}
