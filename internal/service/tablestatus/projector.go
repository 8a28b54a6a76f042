package tablestatus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
)

// Projector пересчитывает производный статус стола после изменения бронирования.
// Вызывается внутри транзакции записи брони.
type Projector struct {
	tables       TableRepository
	reservations ReservationRepository
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewProjector создает новый экземпляр пересчета статусов
func NewProjector(
	tables TableRepository,
	reservations ReservationRepository,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *Projector {
	return &Projector{
		tables:       tables,
		reservations: reservations,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// Apply выставляет статус стола брони r по её новому статусу.
// Пишет в БД только если статус действительно меняется.
func (p *Projector) Apply(ctx context.Context, r *domain.Reservation) error {
	table, err := p.loadTable(ctx, "Apply", r.TableID)
	if err != nil {
		return err
	}

	start, err := r.StartMinutes()
	if err != nil {
		return fmt.Errorf("%w: Apply - reservation start: %v", ErrInternal, err)
	}

	hasOther := false
	if r.Status.IsTerminal() {
		hasOther, err = p.reservations.HasLiveReservations(ctx, r.TableID, &r.ID)
		if err != nil {
			p.logger.Error("Apply: failed to check live reservations table=%d: %v", r.TableID, err)
			return fmt.Errorf("%w: Apply - has live reservations: %v", ErrInternal, err)
		}
	}

	next, changed := domain.ProjectTableStatus(domain.ProjectionInput{
		Current:      table.Status,
		Reservation:  r.Status,
		Date:         r.Date,
		StartMinutes: start,
		Now:          p.timeProvider.Now(),
		HasOtherLive: hasOther,
	})
	if !changed {
		return nil
	}

	return p.write(ctx, "Apply", table, next)
}

// Release пересчитывает статус стола, с которого ушла бронь (перенос или удаление):
// стол свободен, если на нем не осталось live-бронирований. Maintenance не трогаем.
func (p *Projector) Release(ctx context.Context, tableID int64) error {
	table, err := p.loadTable(ctx, "Release", tableID)
	if err != nil {
		return err
	}
	if table.IsUnderMaintenance() || table.Status == domain.TableFree {
		return nil
	}

	hasLive, err := p.reservations.HasLiveReservations(ctx, tableID, nil)
	if err != nil {
		p.logger.Error("Release: failed to check live reservations table=%d: %v", tableID, err)
		return fmt.Errorf("%w: Release - has live reservations: %v", ErrInternal, err)
	}
	if hasLive {
		return nil
	}

	return p.write(ctx, "Release", table, domain.TableFree)
}

func (p *Projector) loadTable(ctx context.Context, op string, tableID int64) (*domain.Table, error) {
	table, err := p.tables.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			p.logger.Warn("%s: table not found table=%d", op, tableID)
			return nil, fmt.Errorf("%w: %s - table %d", ErrTableNotFound, op, tableID)
		}
		p.logger.Error("%s: failed to get table=%d: %v", op, tableID, err)
		return nil, fmt.Errorf("%w: %s - get table: %v", ErrInternal, op, err)
	}
	return table, nil
}

func (p *Projector) write(ctx context.Context, op string, table *domain.Table, next domain.TableStatus) error {
	if err := p.tables.SetStatus(ctx, table.ID, next); err != nil {
		p.logger.Error("%s: failed to set status table=%d status=%s: %v", op, table.ID, next, err)
		return fmt.Errorf("%w: %s - set status: %v", ErrInternal, op, err)
	}

	p.metrics.IncTableStatusChange(string(next))
	p.logger.Info("%s: table status changed table=%d from=%s to=%s at=%s",
		op, table.ID, table.Status, next, p.timeProvider.Now().Format(time.RFC3339))
	return nil
}
