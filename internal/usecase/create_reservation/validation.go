package create_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/timegrid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName is longer than %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if req.TableID <= 0 {
		return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	// время вне сетки допустимо, но только в часы работы
	if !timegrid.IsBookableStart(req.StartTime) {
		return fmt.Errorf("%w: startTime must be within 10:00-23:00", ErrInvalidInput)
	}

	if err := validateDuration(req.DurationMinutes); err != nil {
		return err
	}

	if req.Guests <= 0 {
		return fmt.Errorf("%w: guests must be positive", ErrInvalidInput)
	}

	return nil
}

func validateDuration(minutes int) error {
	if minutes < domain.MinDurationMinutes || minutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be within %d..%d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if minutes%domain.DurationStepMinutes != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes", ErrInvalidInput, domain.DurationStepMinutes)
	}
	return nil
}

// initialStatus статус новой брони: confirmed по умолчанию, active для посадки "сейчас"
func initialStatus(status domain.ReservationStatus) (domain.ReservationStatus, error) {
	switch status {
	case "":
		return domain.ReservationConfirmed, nil
	case domain.ReservationConfirmed, domain.ReservationActive:
		return status, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidStatus, status)
	}
}

// validateTable проверяет, что за стол можно посадить гостей
func validateTable(table *domain.Table, guests int) error {
	if table.IsUnderMaintenance() {
		return fmt.Errorf("%w: table %d", ErrTableUnderMaintenance, table.ID)
	}
	if !table.CanSeat(guests) {
		return fmt.Errorf("%w: table %d seats %d, requested %d", ErrCapacityExceeded, table.ID, table.Capacity, guests)
	}
	return nil
}
