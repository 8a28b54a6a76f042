package timegrid

import (
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

// slots канонические времена начала 10:00..22:45 с шагом 15 минут
var slots = generate()

func generate() []types.TimeString {
	out := make([]types.TimeString, 0, Len())
	for m := domain.GridStartMinutes; m <= domain.GridLastSlotMinutes; m += domain.GridStepMinutes {
		t, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			// границы сетки - константы внутри суток
			panic(err)
		}
		out = append(out, t)
	}
	return out
}

// Len количество слотов в сетке
func Len() int {
	return (domain.GridLastSlotMinutes-domain.GridStartMinutes)/domain.GridStepMinutes + 1
}

// Slots возвращает копию сетки
func Slots() []types.TimeString {
	out := make([]types.TimeString, len(slots))
	copy(out, slots)
	return out
}

// At возвращает слот по индексу
func At(i int) types.TimeString {
	return slots[i]
}

// TimeToMinutes переводит HH:MM в минуты от полуночи
func TimeToMinutes(t types.TimeString) (int, error) {
	return t.Minutes()
}

// MinutesToTime переводит минуты от полуночи в HH:MM
func MinutesToTime(m int) (types.TimeString, error) {
	return types.NewTimeStringFromMinutes(m)
}

// AddMinutes сдвигает время на d минут в пределах суток
func AddMinutes(t types.TimeString, d int) (types.TimeString, error) {
	return t.AddMinutes(d)
}

// IndexAtOrAfter индекс первого слота >= minutes.
// false, если такого слота нет (minutes позже 22:45).
func IndexAtOrAfter(minutes int) (int, bool) {
	if minutes <= domain.GridStartMinutes {
		return 0, true
	}
	if minutes > domain.GridLastSlotMinutes {
		return 0, false
	}
	offset := minutes - domain.GridStartMinutes
	idx := (offset + domain.GridStepMinutes - 1) / domain.GridStepMinutes
	return idx, true
}

// IndexAfter индекс первого слота строго > minutes
func IndexAfter(minutes int) (int, bool) {
	return IndexAtOrAfter(minutes + 1)
}

// Contains returns true if t is one of the canonical slots
func Contains(t types.TimeString) bool {
	m, err := t.Minutes()
	if err != nil {
		return false
	}
	return m >= domain.GridStartMinutes &&
		m <= domain.GridLastSlotMinutes &&
		(m-domain.GridStartMinutes)%domain.GridStepMinutes == 0
}

// IsBookableStart returns true if a (possibly off-grid) start lies within [10:00, 23:00)
func IsBookableStart(t types.TimeString) bool {
	m, err := t.Minutes()
	if err != nil {
		return false
	}
	return m >= domain.GridStartMinutes && m < domain.GridCloseMinutes
}

// RoundToGrid округляет момент до ближайшей четверти часа и прижимает к границам сетки
func RoundToGrid(now time.Time) types.TimeString {
	m := now.Hour()*60 + now.Minute()
	rounded := ((m + domain.GridStepMinutes/2) / domain.GridStepMinutes) * domain.GridStepMinutes

	switch {
	case rounded < domain.GridStartMinutes:
		return slots[0]
	case rounded > domain.GridLastSlotMinutes:
		return slots[len(slots)-1]
	}

	idx, _ := IndexAtOrAfter(rounded)
	return slots[idx]
}
