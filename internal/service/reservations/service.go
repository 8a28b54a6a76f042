package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/reservations/models"
	"github.com/m04kA/SMC-TableService/pkg/tablelock"
	"github.com/m04kA/SMC-TableService/pkg/txmanager"
)

// Service сервис для чтения и удаления бронирований
type Service struct {
	reservationRepo ReservationRepository
	projector       StatusProjector
	locker          TableLocker
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	projector StatusProjector,
	locker TableLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
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
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	reservation, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservation(reservation), nil
}

// ListByDate получает все бронирования на дату (любой статус), по времени начала
func (s *Service) ListByDate(ctx context.Context, date time.Time) (*models.ReservationListResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	day := domain.DateOnly(date)

	s.logger.Info("ListByDate: fetching reservations date=%s", day.Format(domain.DateFormat))

	list, err := s.reservationRepo.ListByDate(ctx, day)
	if err != nil {
		s.logger.Error("ListByDate: repository error date=%s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: fetched %d reservations date=%s", len(list), day.Format(domain.DateFormat))
	return models.FromDomainReservationList(day, list), nil
}

// Delete удаляет бронирование и освобождает стол, если на нем больше нет live-броней
func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() {
		s.metrics.IncReservationWrite("delete", domain.Outcome(err))
	}()

	s.logger.Info("Delete: deleting reservation id=%d", id)

	current, err := s.get(ctx, "Delete", id)
	if err != nil {
		return err
	}

	unlock, err := s.locker.Lock(ctx, current.TableID)
	if err != nil {
		if errors.Is(err, tablelock.ErrLockTimeout) {
			s.logger.Warn("Delete: table=%d is locked by another writer", current.TableID)
			return ErrTableBusy
		}
		s.logger.Error("Delete: failed to lock table=%d: %v", current.TableID, err)
		return fmt.Errorf("%w: Delete - lock table: %v", ErrInternal, err)
	}
	defer unlock()

	var deleted *domain.Reservation

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.get(txCtx, "Delete", id)
		if err != nil {
			return err
		}
		if reservation.TableID != current.TableID {
			return fmt.Errorf("%w: reservation %d changed table", ErrConcurrentUpdate, id)
		}

		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("Delete: repository error id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if err := s.projector.Release(txCtx, reservation.TableID); err != nil {
			s.logger.Error("Delete: failed to release table=%d: %v", reservation.TableID, err)
			return fmt.Errorf("%w: Delete - release table: %v", ErrInternal, err)
		}

		deleted = reservation
		return nil
	})
	// публикация идет уже без блокировки стола
	unlock()
	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrSerialization):
			s.logger.Warn("Delete: serialization conflict id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		case domain.HasKind(err):
			return err
		default:
			s.logger.Error("Delete: transaction failed id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d table=%d", id, deleted.TableID)

	s.publisher.Publish(ctx, domain.NewReservationEvent(domain.EventReservationDeleted, deleted, s.timeProvider.Now()))
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}
