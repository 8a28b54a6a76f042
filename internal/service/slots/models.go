package slots

import (
	"time"

	"github.com/m04kA/SMC-TableService/pkg/types"
)

// NearestSlotQuery поиск ближайшего времени на дату ("посадить сейчас")
type NearestSlotQuery struct {
	Date            time.Time
	Guests          int
	DurationMinutes int
	From            types.TimeString
}

// BestSlotQuery поиск первого свободного (дата, время) в горизонте
type BestSlotQuery struct {
	StartDate       time.Time
	Guests          int
	DurationMinutes int
	HorizonDays     int // 0 - значение по умолчанию
}

// EditSlotQuery поиск слота для переноса существующей брони
type EditSlotQuery struct {
	BestSlotQuery
	ReservationID  int64
	CurrentTableID int64
}
