package domain

import (
	"time"
)

// ProjectionInput всё, что нужно для вычисления статуса стола после изменения бронирования
type ProjectionInput struct {
	Current      TableStatus
	Reservation  ReservationStatus
	Date         time.Time
	StartMinutes int
	Now          time.Time
	HasOtherLive bool // у стола есть другие confirmed/active бронирования
}

// ProjectTableStatus вычисляет статус стола по новому статусу бронирования.
// Второе значение false, если статус стола менять не нужно.
// Maintenance снимается только явным редактированием стола.
func ProjectTableStatus(in ProjectionInput) (TableStatus, bool) {
	if in.Current == TableMaintenance {
		return in.Current, false
	}

	var next TableStatus
	switch in.Reservation {
	case ReservationActive:
		next = TableOccupied
	case ReservationCompleted, ReservationCancelled, ReservationNoShow:
		if in.HasOtherLive {
			return in.Current, false
		}
		next = TableFree
	case ReservationConfirmed:
		next = TableReserved
		if SameDate(in.Date, in.Now) {
			nowMinutes := in.Now.Hour()*60 + in.Now.Minute()
			if abs(nowMinutes-in.StartMinutes) <= OccupiedWindowMinutes {
				next = TableOccupied
			}
		}
	default:
		return in.Current, false
	}

	return next, next != in.Current
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
