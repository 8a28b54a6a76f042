package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/availability"
	"github.com/m04kA/SMC-TableService/pkg/ptr"
	"github.com/m04kA/SMC-TableService/pkg/tablelock"
	"github.com/m04kA/SMC-TableService/pkg/txmanager"
)

const operation = "update"

// UseCase use case для изменения бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	checker         AvailabilityChecker
	projector       StatusProjector
	locker          TableLocker
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	checker AvailabilityChecker,
	projector StatusProjector,
	locker TableLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		checker:         checker,
		projector:       projector,
		locker:          locker,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case изменения бронирования.
// Блокируются старый и новый стол, бронь перечитывается в транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		uc.metrics.IncReservationWrite(operation, domain.Outcome(err))
	}()

	uc.logger.Info("UpdateReservation: id=%d, table=%d, date=%s, time=%s, duration=%d, guests=%d, status=%s",
		req.ReservationID, req.TableID, req.Date.Format(domain.DateFormat), req.StartTime,
		req.DurationMinutes, req.Guests, req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Узнаем текущий стол, чтобы заблокировать его вместе с новым
	current, err := uc.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, current.TableID, req.TableID)
	if err != nil {
		return nil, uc.lockError(err)
	}
	defer unlock()

	var (
		result   *domain.Reservation
		previous *int64
	)

	// 3. Проверки и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Перечитываем бронь под блокировкой строки
		before, err := uc.getReservation(txCtx, req.ReservationID)
		if err != nil {
			return err
		}
		if before.TableID != current.TableID {
			uc.logger.Warn("UpdateReservation: reservation id=%d moved to table=%d meanwhile", before.ID, before.TableID)
			return fmt.Errorf("%w: reservation %d changed table", ErrConcurrentUpdate, before.ID)
		}

		status, err := targetStatus(before, req.Status)
		if err != nil {
			uc.logger.Warn("UpdateReservation: %v", err)
			return err
		}

		after := *before
		after.TableID = req.TableID
		after.Date = domain.DateOnly(req.Date)
		after.StartTime = req.StartTime
		after.DurationMinutes = req.DurationMinutes
		after.Guests = req.Guests
		after.Status = status

		// 3.2. Целевой стол
		table, err := uc.tableRepo.GetByID(txCtx, after.TableID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("UpdateReservation: table id=%d not found", after.TableID)
				return ErrTableNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get table id=%d: %v", after.TableID, err)
			return fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
		}

		if after.IsLive() {
			if err := validateTable(table, after.Guests, after.TableID != before.TableID); err != nil {
				uc.logger.Warn("UpdateReservation: %v", err)
				return err
			}

			// 3.3. Пересечения проверяем, только если бронь сдвинулась
			if isMoved(before, &after) {
				available, err := uc.checker.IsAvailable(txCtx, availability.AvailabilityQuery{
					TableID:              after.TableID,
					Date:                 after.Date,
					StartTime:            after.StartTime,
					DurationMinutes:      after.DurationMinutes,
					ExcludeReservationID: ptr.Ptr(after.ID),
				})
				if err != nil {
					uc.logger.Error("UpdateReservation: failed to check availability table=%d: %v", after.TableID, err)
					return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
				}
				if !available {
					uc.logger.Warn("UpdateReservation: table=%d is taken on %s at %s",
						after.TableID, after.Date.Format(domain.DateFormat), after.StartTime)
					return ErrTableNotAvailable
				}
			}
		}

		// 3.4. Запись
		if err := uc.reservationRepo.Update(txCtx, &after); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", after.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		// 3.5. Статусы столов: новый по брони, старый - по оставшимся броням
		if err := uc.projector.Apply(txCtx, &after); err != nil {
			uc.logger.Error("UpdateReservation: failed to project table status table=%d: %v", after.TableID, err)
			return fmt.Errorf("%w: failed to project table status: %v", ErrInternal, err)
		}
		if before.TableID != after.TableID {
			if err := uc.projector.Release(txCtx, before.TableID); err != nil {
				uc.logger.Error("UpdateReservation: failed to release table=%d: %v", before.TableID, err)
				return fmt.Errorf("%w: failed to release previous table: %v", ErrInternal, err)
			}
			previous = ptr.Ptr(before.TableID)
		}

		result = &after
		return nil
	})
	// публикация идет уже без блокировки стола
	unlock()
	if err != nil {
		return nil, uc.txError(err)
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d table=%d status=%s",
		result.ID, result.TableID, result.Status)

	event := domain.NewReservationEvent(domain.EventReservationUpdated, result, uc.timeProvider.Now())
	event.PreviousTableID = previous
	uc.publisher.Publish(ctx, event)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ClientName:      result.ClientName,
		TableID:         result.TableID,
		PreviousTableID: previous,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Guests:          result.Guests,
		Status:          result.Status,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func (uc *UseCase) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("UpdateReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	return reservation, nil
}

func (uc *UseCase) lockError(err error) error {
	if errors.Is(err, tablelock.ErrLockTimeout) {
		uc.logger.Warn("UpdateReservation: table is locked by another writer")
		return ErrTableBusy
	}
	uc.logger.Error("UpdateReservation: failed to lock tables: %v", err)
	return fmt.Errorf("%w: failed to lock tables: %v", ErrInternal, err)
}

func (uc *UseCase) txError(err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("UpdateReservation: serialization conflict: %v", err)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	case domain.HasKind(err):
		return err
	default:
		uc.logger.Error("UpdateReservation: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
