package availability

import (
	"time"

	"github.com/m04kA/SMC-TableService/pkg/types"
)

// AvailabilityQuery проверка одного стола
type AvailabilityQuery struct {
	TableID              int64
	Date                 time.Time
	StartTime            types.TimeString
	DurationMinutes      int
	ExcludeReservationID *int64 // при редактировании бронь не конфликтует сама с собой
}

// CandidateQuery поиск подходящих столов на слот
type CandidateQuery struct {
	Date                 time.Time
	StartTime            types.TimeString
	DurationMinutes      int
	Guests               int
	ExcludeReservationID *int64
}
