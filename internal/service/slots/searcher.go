package slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/availability"
	"github.com/m04kA/SMC-TableService/internal/timegrid"
	"github.com/m04kA/SMC-TableService/pkg/types"
)

const (
	kindNearest = "nearest"
	kindBest    = "best"
	kindEdit    = "edit"
)

// Searcher поиск свободных слотов по сетке времени.
// Только чтение, вне транзакций: найденный слот может быть занят до commit,
// поэтому запись брони проверяет доступность заново.
type Searcher struct {
	days         DayLoader
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewSearcher создает новый экземпляр поиска слотов
func NewSearcher(days DayLoader, metrics Metrics, logger Logger) *Searcher {
	return &Searcher{
		days:         days,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Searcher) WithTimeProvider(tp TimeProvider) *Searcher {
	s.timeProvider = tp
	return s
}

// FindNearestSlot возвращает первое время сетки >= From, на которое есть свободный стол.
// Смотрит не дальше NearestSlotLookaheadSteps шагов. nil - ничего не нашлось.
func (s *Searcher) FindNearestSlot(ctx context.Context, q NearestSlotQuery) (*types.TimeString, error) {
	if err := validate(q.Guests, q.DurationMinutes); err != nil {
		return nil, err
	}
	if q.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidQuery)
	}
	from, err := q.From.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: from: %v", ErrInvalidQuery, err)
	}

	first, ok := timegrid.IndexAtOrAfter(from)
	if !ok {
		s.metrics.IncSlotSearch(kindNearest, false)
		return nil, nil
	}

	plan, err := s.days.LoadDay(ctx, q.Date, nil)
	if err != nil {
		return nil, err
	}

	for step := 0; step < domain.NearestSlotLookaheadSteps && first+step < timegrid.Len(); step++ {
		slot := timegrid.At(first + step)
		start, _ := slot.Minutes()
		if len(plan.Candidates(start, q.DurationMinutes, q.Guests)) > 0 {
			s.metrics.IncSlotSearch(kindNearest, true)
			s.logger.Info("FindNearestSlot: date=%s guests=%d from=%s found=%s",
				q.Date.Format(domain.DateFormat), q.Guests, q.From, slot)
			return &slot, nil
		}
	}

	s.metrics.IncSlotSearch(kindNearest, false)
	s.logger.Info("FindNearestSlot: date=%s guests=%d from=%s nothing within %d steps",
		q.Date.Format(domain.DateFormat), q.Guests, q.From, domain.NearestSlotLookaheadSteps)
	return nil, nil
}

// FindBestSlot возвращает минимальную пару (дата, время) со свободными столами в горизонте
func (s *Searcher) FindBestSlot(ctx context.Context, q BestSlotQuery) (*domain.SlotSuggestion, error) {
	suggestion, err := s.scan(ctx, q, nil, func(plan *availability.DayPlan, start int) []*domain.Table {
		return plan.Candidates(start, q.DurationMinutes, q.Guests)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncSlotSearch(kindBest, suggestion != nil)
	return suggestion, nil
}

// FindBestSlotForEdit как FindBestSlot, но не учитывает саму бронь и на каждом времени
// сначала пробует её текущий стол
func (s *Searcher) FindBestSlotForEdit(ctx context.Context, q EditSlotQuery) (*domain.SlotSuggestion, error) {
	if q.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservation id must be positive", ErrInvalidQuery)
	}

	exclude := q.ReservationID
	suggestion, err := s.scan(ctx, q.BestSlotQuery, &exclude, func(plan *availability.DayPlan, start int) []*domain.Table {
		if current := plan.Table(q.CurrentTableID); current != nil &&
			current.CanSeat(q.Guests) &&
			plan.IsAvailable(current.ID, start, q.DurationMinutes) {
			return []*domain.Table{current}
		}
		return plan.Candidates(start, q.DurationMinutes, q.Guests)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncSlotSearch(kindEdit, suggestion != nil)
	return suggestion, nil
}

type pickFunc func(plan *availability.DayPlan, start int) []*domain.Table

// scan перебирает даты, а внутри даты - время сетки, и возвращает первое попадание
func (s *Searcher) scan(ctx context.Context, q BestSlotQuery, excludeID *int64, pick pickFunc) (*domain.SlotSuggestion, error) {
	if err := validate(q.Guests, q.DurationMinutes); err != nil {
		return nil, err
	}
	if q.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidQuery)
	}

	horizon := q.HorizonDays
	if horizon == 0 {
		horizon = domain.BestSlotHorizonDays
	}
	if horizon < 0 || horizon > domain.MaxBestSlotHorizonDays {
		return nil, fmt.Errorf("%w: horizon must be within 1..%d days", ErrInvalidQuery, domain.MaxBestSlotHorizonDays)
	}

	now := s.timeProvider.Now()
	today := domain.DateOnly(now)
	startDate := domain.DateOnly(q.StartDate)

	for offset := 0; offset < horizon; offset++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := startDate.AddDate(0, 0, offset)
		if date.Before(today) {
			continue
		}

		first := 0
		if date.Equal(today) {
			// сегодня предлагаем только слоты строго позже now + grace
			nowMinutes := now.Hour()*60 + now.Minute()
			idx, ok := timegrid.IndexAfter(nowMinutes + domain.BestSlotGraceMinutes)
			if !ok {
				continue
			}
			first = idx
		}

		plan, err := s.days.LoadDay(ctx, date, excludeID)
		if err != nil {
			return nil, err
		}

		for i := first; i < timegrid.Len(); i++ {
			slot := timegrid.At(i)
			start, _ := slot.Minutes()
			if tables := pick(plan, start); len(tables) > 0 {
				s.logger.Info("FindBestSlot: guests=%d duration=%d found date=%s time=%s tables=%d",
					q.Guests, q.DurationMinutes, date.Format(domain.DateFormat), slot, len(tables))
				return &domain.SlotSuggestion{Date: date, StartTime: slot, Tables: tables}, nil
			}
		}
	}

	s.logger.Info("FindBestSlot: guests=%d duration=%d nothing within %d days from %s",
		q.Guests, q.DurationMinutes, horizon, startDate.Format(domain.DateFormat))
	return nil, nil
}

func validate(guests, duration int) error {
	if guests <= 0 {
		return fmt.Errorf("%w: guests must be positive", ErrInvalidQuery)
	}
	if duration < domain.MinDurationMinutes || duration > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be within %d..%d minutes",
			ErrInvalidQuery, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	return nil
}
