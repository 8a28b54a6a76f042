package domain

import (
	"fmt"
	"strings"
)

// transitions допустимые переходы статусов бронирования
var transitions = map[ReservationStatus][]ReservationStatus{
	ReservationConfirmed: {ReservationActive, ReservationCancelled, ReservationNoShow},
	ReservationActive:    {ReservationCompleted, ReservationNoShow},
}

// ValidTransitionsFrom returns all statuses reachable from status in one step
func ValidTransitionsFrom(status ReservationStatus) []ReservationStatus {
	next := transitions[status]
	out := make([]ReservationStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition проверяет переход from -> to
func CanTransition(from, to ReservationStatus) error {
	for _, s := range transitions[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s is not allowed, valid transitions from %s: %s",
		ErrInvalidTransition, from, to, from, describeValidFrom(from))
}

func describeValidFrom(status ReservationStatus) string {
	next := transitions[status]
	if len(next) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, 0, len(next))
	for _, s := range next {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
