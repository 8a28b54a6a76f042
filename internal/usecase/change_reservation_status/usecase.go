package change_reservation_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/tablelock"
	"github.com/m04kA/SMC-TableService/pkg/txmanager"
)

const operation = "status"

// UseCase use case для перехода бронирования по статусам
type UseCase struct {
	reservationRepo ReservationRepository
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
	projector StatusProjector,
	locker TableLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
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

// Execute переводит бронь в новый статус и пересчитывает статус стола
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		uc.metrics.IncReservationWrite(operation, domain.Outcome(err))
	}()

	uc.logger.Info("ChangeReservationStatus: id=%d, status=%s", req.ReservationID, req.Status)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeReservationStatus: validation failed: %v", err)
		return nil, err
	}

	current, err := uc.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	// переход проверяем до блокировки, чтобы не ждать ради заведомой ошибки
	if err := domain.CanTransition(current.Status, req.Status); err != nil {
		uc.logger.Warn("ChangeReservationStatus: id=%d: %v", current.ID, err)
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, current.TableID)
	if err != nil {
		if errors.Is(err, tablelock.ErrLockTimeout) {
			uc.logger.Warn("ChangeReservationStatus: table=%d is locked by another writer", current.TableID)
			return nil, ErrTableBusy
		}
		uc.logger.Error("ChangeReservationStatus: failed to lock table=%d: %v", current.TableID, err)
		return nil, fmt.Errorf("%w: failed to lock table: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Reservation
	var previous domain.ReservationStatus

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := uc.getReservation(txCtx, req.ReservationID)
		if err != nil {
			return err
		}
		if reservation.TableID != current.TableID {
			uc.logger.Warn("ChangeReservationStatus: reservation id=%d moved to table=%d meanwhile",
				reservation.ID, reservation.TableID)
			return fmt.Errorf("%w: reservation %d changed table", ErrConcurrentUpdate, reservation.ID)
		}

		// статус мог смениться, пока ждали блокировку
		if err := domain.CanTransition(reservation.Status, req.Status); err != nil {
			uc.logger.Warn("ChangeReservationStatus: id=%d: %v", reservation.ID, err)
			return err
		}

		if err := uc.reservationRepo.UpdateStatus(txCtx, reservation.ID, req.Status); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("ChangeReservationStatus: failed to update status id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		previous = reservation.Status
		reservation.Status = req.Status

		if err := uc.projector.Apply(txCtx, reservation); err != nil {
			uc.logger.Error("ChangeReservationStatus: failed to project table status table=%d: %v", reservation.TableID, err)
			return fmt.Errorf("%w: failed to project table status: %v", ErrInternal, err)
		}

		result = reservation
		return nil
	})
	// публикация идет уже без блокировки стола
	unlock()
	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrSerialization):
			uc.logger.Warn("ChangeReservationStatus: serialization conflict: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		case domain.HasKind(err):
			return nil, err
		default:
			uc.logger.Error("ChangeReservationStatus: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("ChangeReservationStatus: reservation id=%d %s -> %s", result.ID, previous, result.Status)

	uc.publisher.Publish(ctx, domain.NewReservationEvent(domain.EventReservationStatusChanged, result, uc.timeProvider.Now()))

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ClientName:      result.ClientName,
		TableID:         result.TableID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Guests:          result.Guests,
		Status:          result.Status,
		PreviousStatus:  previous,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func (uc *UseCase) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("ChangeReservationStatus: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ChangeReservationStatus: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	return reservation, nil
}
