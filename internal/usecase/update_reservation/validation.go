package update_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/timegrid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.TableID <= 0 {
		return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if !timegrid.IsBookableStart(req.StartTime) {
		return fmt.Errorf("%w: startTime must be within 10:00-23:00", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be within %d..%d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if req.DurationMinutes%domain.DurationStepMinutes != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes", ErrInvalidInput, domain.DurationStepMinutes)
	}

	if req.Guests <= 0 {
		return fmt.Errorf("%w: guests must be positive", ErrInvalidInput)
	}

	if req.Status != "" && !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	return nil
}

// targetStatus итоговый статус брони и проверка перехода
func targetStatus(current *domain.Reservation, requested domain.ReservationStatus) (domain.ReservationStatus, error) {
	if current.Status.IsTerminal() {
		return "", fmt.Errorf("%w: id=%d status=%s", ErrReservationClosed, current.ID, current.Status)
	}
	if requested == "" || requested == current.Status {
		return current.Status, nil
	}
	if err := domain.CanTransition(current.Status, requested); err != nil {
		return "", err
	}
	return requested, nil
}

// isMoved возвращает true, если изменилось место или время брони
func isMoved(before, after *domain.Reservation) bool {
	return before.TableID != after.TableID ||
		!domain.SameDate(before.Date, after.Date) ||
		before.StartTime != after.StartTime ||
		before.DurationMinutes != after.DurationMinutes
}

// validateTable проверяет, что за стол можно посадить гостей.
// Maintenance запрещает только пересадку на этот стол.
func validateTable(table *domain.Table, guests int, tableChanged bool) error {
	if tableChanged && table.IsUnderMaintenance() {
		return fmt.Errorf("%w: table %d", ErrTableUnderMaintenance, table.ID)
	}
	if !table.CanSeat(guests) {
		return fmt.Errorf("%w: table %d seats %d, requested %d", ErrCapacityExceeded, table.ID, table.Capacity, guests)
	}
	return nil
}
