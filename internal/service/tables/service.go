package tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	tableRepo "github.com/m04kA/RestaurantReservationService/internal/infra/storage/table"
	"github.com/m04kA/RestaurantReservationService/internal/service/tables/models"
	"github.com/m04kA/RestaurantReservationService/pkg/validator"
)

// Service сервис управления каталогом столов
type Service struct {
	tableRepo TableRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса столов
func NewService(tableRepo TableRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		tableRepo: tableRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Create создает стол
func (s *Service) Create(ctx context.Context, req *models.CreateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("CreateTable: name=%s, capacity=%d, location=%s", req.Name, req.Capacity, req.Location)

	if errs := validator.Validate(req); errs != nil {
		s.logger.Warn("CreateTable: validation failed: %s", validator.Describe(errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validator.Describe(errs))
	}
	if req.Capacity > domain.MaxTableCapacity {
		return nil, fmt.Errorf("%w: capacity must not exceed %d", ErrInvalidInput, domain.MaxTableCapacity)
	}

	created, err := s.tableRepo.Create(ctx, req.ToDomainTable())
	if err != nil {
		s.logger.Error("CreateTable: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTable: successfully created table id=%d", created.ID)
	return models.FromDomainTable(created), nil
}

// List возвращает столы в порядке каталога
func (s *Service) List(ctx context.Context, req *models.ListTablesRequest) ([]models.TableResponse, error) {
	filter := domain.TablesFilter{}
	if req != nil && req.Location != nil {
		location := domain.TableLocation(*req.Location)
		if !location.IsValid() {
			return nil, fmt.Errorf("%w: unknown location %q", ErrInvalidInput, *req.Location)
		}
		filter.Location = &location
	}

	tables, err := s.tableRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListTables: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTableList(tables), nil
}

// Update частично обновляет стол
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("UpdateTable: id=%d", id)

	if errs := validator.Validate(req); errs != nil {
		s.logger.Warn("UpdateTable: validation failed for id=%d: %s", id, validator.Describe(errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validator.Describe(errs))
	}
	if req.Capacity != nil && *req.Capacity > domain.MaxTableCapacity {
		return nil, fmt.Errorf("%w: capacity must not exceed %d", ErrInvalidInput, domain.MaxTableCapacity)
	}

	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			s.logger.Warn("UpdateTable: table id=%d not found", id)
			return nil, ErrTableNotFound
		}
		s.logger.Error("UpdateTable: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - get table: %v", ErrInternal, err)
	}

	req.ApplyTo(table)

	if err := s.tableRepo.Update(ctx, table); err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			return nil, ErrTableNotFound
		}
		s.logger.Error("UpdateTable: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateTable: successfully updated table id=%d", id)
	return models.FromDomainTable(table), nil
}

// Delete удаляет стол, если на нем нет бронирований Confirmed или Pending Payment
// Проверка и удаление выполняются в одной транзакции
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeleteTable: id=%d", id)

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		hasActive, err := s.tableRepo.HasActiveReservations(txCtx, id)
		if err != nil {
			s.logger.Error("DeleteTable: failed to check reservations for id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - check reservations: %v", ErrInternal, err)
		}
		if hasActive {
			s.logger.Warn("DeleteTable: table id=%d has active reservations", id)
			return ErrTableHasActiveReservations
		}

		if err := s.tableRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				s.logger.Warn("DeleteTable: table id=%d not found", id)
				return ErrTableNotFound
			}
			s.logger.Error("DeleteTable: repository error for id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("DeleteTable: successfully deleted table id=%d", id)
		return nil
	})
}
