package tables

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TableService/internal/domain"
	tableRepo "github.com/m04kA/SMC-TableService/internal/infra/storage/table"
	"github.com/m04kA/SMC-TableService/internal/service/tables/models"
	"github.com/m04kA/SMC-TableService/pkg/tablelock"
)

// Service сервис управления столами зала
type Service struct {
	tableRepo       TableRepository
	reservationRepo ReservationRepository
	locker          TableLocker
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса столов
func NewService(
	tableRepo TableRepository,
	reservationRepo ReservationRepository,
	locker TableLocker,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		locker:          locker,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// List получает столы с опциональным фильтром по зоне и вместимости
func (s *Service) List(ctx context.Context, req *models.ListTablesRequest) (*models.TableListResponse, error) {
	if req.MinCapacity != nil && *req.MinCapacity <= 0 {
		return nil, fmt.Errorf("%w: minCapacity must be positive", ErrInvalidInput)
	}

	list, err := s.tableRepo.List(ctx, domain.TablesFilter{
		Zone:        req.Zone,
		MinCapacity: req.MinCapacity,
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTableList(list), nil
}

// GetByID получает стол по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TableResponse, error) {
	table, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainTable(table), nil
}

// Create создает стол. Новый стол свободен или сразу на обслуживании.
func (s *Service) Create(ctx context.Context, req *models.CreateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("Create: creating table capacity=%d zone=%q status=%q", req.Capacity, req.Zone, req.Status)

	zone, err := validateTableData(req.Capacity, req.Zone)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	status := domain.TableFree
	if req.Status != "" {
		status = domain.TableStatus(req.Status)
		if status != domain.TableFree && status != domain.TableMaintenance {
			s.logger.Warn("Create: invalid initial status=%q", req.Status)
			return nil, fmt.Errorf("%w: new table can only be free or maintenance", ErrInvalidInput)
		}
	}

	created, err := s.tableRepo.Create(ctx, &domain.Table{
		Capacity: req.Capacity,
		Zone:     zone,
		Status:   status,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created table id=%d", created.ID)
	return models.FromDomainTable(created), nil
}

// Update перезаписывает вместимость, зону и (опционально) статус стола
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("Update: updating table id=%d capacity=%d zone=%q status=%q", id, req.Capacity, req.Zone, req.Status)

	zone, err := validateTableData(req.Capacity, req.Zone)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	var status domain.TableStatus
	if req.Status != "" {
		status, err = domain.ParseTableStatus(req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%q", req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	unlock, err := s.lock(ctx, "Update", id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result *domain.Table
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		table, err := s.get(txCtx, "Update", id)
		if err != nil {
			return err
		}

		table.Capacity = req.Capacity
		table.Zone = zone
		if status != "" {
			table.Status = status
		}

		if err := s.tableRepo.Update(txCtx, table); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrTableNotFound
			}
			s.logger.Error("Update: repository error id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = table
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err)
	}

	s.logger.Info("Update: successfully updated table id=%d status=%s", id, result.Status)
	return models.FromDomainTable(result), nil
}

// Delete удаляет стол, если у него нет бронирований на сегодня и позже (кроме отмененных)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting table id=%d", id)

	unlock, err := s.lock(ctx, "Delete", id)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.get(txCtx, "Delete", id); err != nil {
			return err
		}

		upcoming, err := s.reservationRepo.HasUpcomingReservations(txCtx, id, s.timeProvider.Now())
		if err != nil {
			s.logger.Error("Delete: failed to check reservations table=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - check reservations: %v", ErrInternal, err)
		}
		if upcoming {
			s.logger.Warn("Delete: table id=%d has upcoming reservations", id)
			return ErrTableHasReservations
		}

		if err := s.tableRepo.Delete(txCtx, id); err != nil {
			switch {
			case errors.Is(err, tableRepo.ErrTableReferenced):
				return fmt.Errorf("%w: %v", ErrTableHasReservations, err)
			case errors.Is(err, domain.ErrNotFound):
				return ErrTableNotFound
			}
			s.logger.Error("Delete: repository error id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return wrapTxError(err)
	}

	s.logger.Info("Delete: successfully deleted table id=%d", id)
	return nil
}

// Zones возвращает различные непустые зоны в алфавитном порядке
func (s *Service) Zones(ctx context.Context) ([]string, error) {
	zones, err := s.tableRepo.Zones(ctx)
	if err != nil {
		s.logger.Error("Zones: repository error: %v", err)
		return nil, fmt.Errorf("%w: Zones - repository error: %v", ErrInternal, err)
	}
	return zones, nil
}

// Statistics сводка по статусам столов и загрузке зала
func (s *Service) Statistics(ctx context.Context) (*models.StatisticsResponse, error) {
	counts, err := s.tableRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Statistics: repository error: %v", err)
		return nil, fmt.Errorf("%w: Statistics - repository error: %v", ErrInternal, err)
	}

	zones, err := s.Zones(ctx)
	if err != nil {
		return nil, err
	}

	stats := domain.NewTableStatistics(counts)
	s.logger.Info("Statistics: total=%d busy=%d load=%.1f%%", stats.Total, stats.Busy, stats.LoadPercentage)
	return models.FromDomainStatistics(stats, zones), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Table, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: table id=%d not found", op, id)
			return nil, ErrTableNotFound
		}
		s.logger.Error("%s: repository error for table id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return table, nil
}

func (s *Service) lock(ctx context.Context, op string, id int64) (tablelock.UnlockFunc, error) {
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		if errors.Is(err, tablelock.ErrLockTimeout) {
			s.logger.Warn("%s: table=%d is locked by another writer", op, id)
			return nil, ErrTableBusy
		}
		s.logger.Error("%s: failed to lock table=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - lock table: %v", ErrInternal, op, err)
	}
	return unlock, nil
}

func wrapTxError(err error) error {
	if domain.HasKind(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// validateTableData проверяет вместимость и зону, возвращает зону без пробелов по краям
func validateTableData(capacity int, zone string) (string, error) {
	if capacity <= 0 {
		return "", fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	zone = strings.TrimSpace(zone)
	if len(zone) > domain.MaxZoneLength {
		return "", fmt.Errorf("%w: zone is longer than %d characters", ErrInvalidInput, domain.MaxZoneLength)
	}
	return zone, nil
}
