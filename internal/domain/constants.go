package domain

// Сетка времени начала бронирований (минуты от полуночи)
const (
	GridStartMinutes    = 10 * 60    // 10:00
	GridLastSlotMinutes = 22*60 + 45 // 22:45
	GridStepMinutes     = 15
	GridCloseMinutes    = 23 * 60 // верхняя граница времени начала, не включительно
)

// Поиск слотов
const (
	NearestSlotLookaheadSteps = 12 // 3 часа вперёд по сетке
	BestSlotHorizonDays       = 30
	MaxBestSlotHorizonDays    = 90
	BestSlotGraceMinutes      = 15
)

// OccupiedWindowMinutes окно вокруг времени начала, в котором confirmed-бронь уже занимает стол
const OccupiedWindowMinutes = 30

// Ограничения бронирования
const (
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 180
	DurationStepMinutes    = 15
	DefaultDurationMinutes = 120
	MaxClientNameLength    = 255
	MaxZoneLength          = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
