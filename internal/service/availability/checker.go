package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

// Checker проверка занятости столов. Единственное место, где считаются пересечения бронирований.
type Checker struct {
	reservations ReservationRepository
	tables       TableRepository
	metrics      Metrics
	logger       Logger
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(reservations ReservationRepository, tables TableRepository, metrics Metrics, logger Logger) *Checker {
	return &Checker{
		reservations: reservations,
		tables:       tables,
		metrics:      metrics,
		logger:       logger,
	}
}

// IsAvailable проверяет, что на столе нет confirmed/active брони, пересекающейся с запрошенным промежутком.
// Внутри транзакции прочитанные брони блокируются репозиторием.
func (c *Checker) IsAvailable(ctx context.Context, q AvailabilityQuery) (bool, error) {
	start, err := validateWindow(q.Date, q.StartTime, q.DurationMinutes)
	if err != nil {
		return false, err
	}

	reservations, err := c.reservations.List(ctx, domain.ReservationsFilter{
		TableID:   &q.TableID,
		Date:      &q.Date,
		Statuses:  domain.LiveStatuses,
		ExcludeID: q.ExcludeReservationID,
	})
	if err != nil {
		c.logger.Error("IsAvailable: failed to list reservations table=%d date=%s: %v",
			q.TableID, q.Date.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: IsAvailable - list reservations: %v", ErrInternal, err)
	}

	busy, err := toIntervals(reservations)
	if err != nil {
		c.logger.Error("IsAvailable: stored reservation has invalid start time table=%d: %v", q.TableID, err)
		return false, fmt.Errorf("%w: IsAvailable - %v", ErrInternal, err)
	}

	if !free(busy, start, q.DurationMinutes) {
		c.metrics.IncAvailabilityConflict()
		c.logger.Info("IsAvailable: table=%d date=%s start=%s duration=%d is taken",
			q.TableID, q.Date.Format(domain.DateFormat), q.StartTime, q.DurationMinutes)
		return false, nil
	}

	return true, nil
}

// FindCandidateTables возвращает свободные на слот столы в порядке (capacity, zone, id).
// Пустой список - нормальный результат.
func (c *Checker) FindCandidateTables(ctx context.Context, q CandidateQuery) ([]*domain.Table, error) {
	start, err := validateWindow(q.Date, q.StartTime, q.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if q.Guests <= 0 {
		return nil, fmt.Errorf("%w: guests must be positive", ErrInvalidQuery)
	}

	plan, err := c.LoadDay(ctx, q.Date, q.ExcludeReservationID)
	if err != nil {
		return nil, err
	}

	return plan.Candidates(start, q.DurationMinutes, q.Guests), nil
}

// LoadDay читает столы (кроме maintenance) и live-брони на дату одним снимком
func (c *Checker) LoadDay(ctx context.Context, date time.Time, excludeReservationID *int64) (*DayPlan, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidQuery)
	}

	tables, err := c.tables.List(ctx, domain.TablesFilter{
		ExcludeStatuses: []domain.TableStatus{domain.TableMaintenance},
	})
	if err != nil {
		c.logger.Error("LoadDay: failed to list tables: %v", err)
		return nil, fmt.Errorf("%w: LoadDay - list tables: %v", ErrInternal, err)
	}

	reservations, err := c.reservations.List(ctx, domain.ReservationsFilter{
		Date:      &date,
		Statuses:  domain.LiveStatuses,
		ExcludeID: excludeReservationID,
	})
	if err != nil {
		c.logger.Error("LoadDay: failed to list reservations date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: LoadDay - list reservations: %v", ErrInternal, err)
	}

	// порядок не зависит от того, как его отдало хранилище
	ordered := make([]*domain.Table, len(tables))
	copy(ordered, tables)
	SortTables(ordered)

	plan := &DayPlan{
		Date:   domain.DateOnly(date),
		tables: ordered,
		byID:   make(map[int64]*domain.Table, len(ordered)),
		busy:   make(map[int64][]interval),
	}
	for _, t := range ordered {
		plan.byID[t.ID] = t
	}

	for _, r := range reservations {
		start, err := r.StartMinutes()
		if err != nil {
			c.logger.Error("LoadDay: reservation id=%d has invalid start time: %v", r.ID, err)
			return nil, fmt.Errorf("%w: LoadDay - %v", ErrInternal, err)
		}
		plan.busy[r.TableID] = append(plan.busy[r.TableID], interval{start: start, duration: r.DurationMinutes})
	}

	return plan, nil
}

func validateWindow(date time.Time, startTime types.TimeString, duration int) (int, error) {
	if date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidQuery)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive", ErrInvalidQuery)
	}
	start, err := startTime.Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return start, nil
}
