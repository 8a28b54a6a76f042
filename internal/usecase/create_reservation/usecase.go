package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/internal/service/availability"
	"github.com/m04kA/SMC-TableService/pkg/tablelock"
	"github.com/m04kA/SMC-TableService/pkg/txmanager"
)

const operation = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	clientRepo      ClientRepository
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
	clientRepo ClientRepository,
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
		clientRepo:      clientRepo,
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

// Execute выполняет use case создания бронирования.
// Запись идет под блокировкой стола и в сериализуемой транзакции,
// доступность перепроверяется внутри транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		uc.metrics.IncReservationWrite(operation, domain.Outcome(err))
	}()

	uc.logger.Info("CreateReservation: table=%d, date=%s, time=%s, duration=%d, guests=%d",
		req.TableID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes, req.Guests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	status, err := initialStatus(req.Status)
	if err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 2. Блокируем стол
	unlock, err := uc.locker.Lock(ctx, req.TableID)
	if err != nil {
		return nil, uc.lockError(req.TableID, err)
	}
	defer unlock()

	date := domain.DateOnly(req.Date)
	var result *domain.Reservation

	// 3. Проверки и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Стол (FOR UPDATE)
		table, err := uc.tableRepo.GetByID(txCtx, req.TableID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("CreateReservation: table id=%d not found", req.TableID)
				return ErrTableNotFound
			}
			uc.logger.Error("CreateReservation: failed to get table id=%d: %v", req.TableID, err)
			return fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
		}

		if err := validateTable(table, req.Guests); err != nil {
			uc.logger.Warn("CreateReservation: %v", err)
			return err
		}

		// 3.2. Пересечения с другими бронями стола
		available, err := uc.checker.IsAvailable(txCtx, availability.AvailabilityQuery{
			TableID:         req.TableID,
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check availability table=%d: %v", req.TableID, err)
			return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if !available {
			uc.logger.Warn("CreateReservation: table=%d is taken on %s at %s",
				req.TableID, date.Format(domain.DateFormat), req.StartTime)
			return ErrTableNotAvailable
		}

		// 3.3. Гость
		client, err := uc.clientRepo.GetOrCreate(txCtx, strings.TrimSpace(req.ClientName))
		if err != nil {
			uc.logger.Error("CreateReservation: failed to resolve client: %v", err)
			return fmt.Errorf("%w: failed to resolve client: %v", ErrInternal, err)
		}

		// 3.4. Бронь
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			ClientID:        client.ID,
			ClientName:      client.Name,
			TableID:         req.TableID,
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Guests:          req.Guests,
			Status:          status,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 3.5. Статус стола
		if err := uc.projector.Apply(txCtx, created); err != nil {
			uc.logger.Error("CreateReservation: failed to project table status table=%d: %v", req.TableID, err)
			return fmt.Errorf("%w: failed to project table status: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	// публикация идет уже без блокировки стола
	unlock()
	if err != nil {
		return nil, uc.txError(err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d table=%d status=%s",
		result.ID, result.TableID, result.Status)

	uc.publisher.Publish(ctx, domain.NewReservationEvent(domain.EventReservationCreated, result, uc.timeProvider.Now()))

	return toResponse(result), nil
}

func (uc *UseCase) lockError(tableID int64, err error) error {
	if errors.Is(err, tablelock.ErrLockTimeout) {
		uc.logger.Warn("CreateReservation: table=%d is locked by another writer", tableID)
		return ErrTableBusy
	}
	uc.logger.Error("CreateReservation: failed to lock table=%d: %v", tableID, err)
	return fmt.Errorf("%w: failed to lock table: %v", ErrInternal, err)
}

func (uc *UseCase) txError(err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("CreateReservation: serialization conflict: %v", err)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	case domain.HasKind(err):
		return err
	default:
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:              r.ID,
		ClientID:        r.ClientID,
		ClientName:      r.ClientName,
		TableID:         r.TableID,
		Date:            r.Date,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Guests:          r.Guests,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
