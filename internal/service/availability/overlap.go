package availability

import "github.com/m04kA/SMC-TableService/internal/domain"

// Overlaps проверяет пересечение полуинтервалов [start, start+duration) и [otherStart, otherStart+otherDuration).
// Касание концами пересечением не считается.
func Overlaps(start, duration, otherStart, otherDuration int) bool {
	return start < otherStart+otherDuration && start+duration > otherStart
}

// interval занятый промежуток стола в минутах от полуночи
type interval struct {
	start    int
	duration int
}

// free returns true if [start, start+duration) overlaps none of busy
func free(busy []interval, start, duration int) bool {
	for _, b := range busy {
		if Overlaps(start, duration, b.start, b.duration) {
			return false
		}
	}
	return true
}

func toIntervals(reservations []*domain.Reservation) ([]interval, error) {
	out := make([]interval, 0, len(reservations))
	for _, r := range reservations {
		start, err := r.StartMinutes()
		if err != nil {
			return nil, err
		}
		out = append(out, interval{start: start, duration: r.DurationMinutes})
	}
	return out, nil
}
