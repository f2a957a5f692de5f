package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	menuRepo "github.com/m04kA/RestaurantReservationService/internal/infra/storage/menu"
	"github.com/m04kA/RestaurantReservationService/internal/service/menu/models"
	"github.com/m04kA/RestaurantReservationService/pkg/validator"
)

// Service сервис меню: публичная витрина и CRUD для администратора
type Service struct {
	menuRepo  MenuRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса меню
func NewService(menuRepo MenuRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		menuRepo:  menuRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// ListActive возвращает только активные позиции для гостей
func (s *Service) ListActive(ctx context.Context) ([]models.MenuItemResponse, error) {
	return s.list(ctx, "GetMenu", domain.MenuFilter{OnlyActive: true})
}

// ListAll возвращает все позиции, включая скрытые
func (s *Service) ListAll(ctx context.Context) ([]models.MenuItemResponse, error) {
	return s.list(ctx, "ListMenu", domain.MenuFilter{})
}

func (s *Service) list(ctx context.Context, op string, filter domain.MenuFilter) ([]models.MenuItemResponse, error) {
	items, err := s.menuRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return models.FromDomainMenuList(items), nil
}

// Create добавляет позицию; имя не должно совпадать с существующим без учета регистра
func (s *Service) Create(ctx context.Context, req *models.CreateMenuItemRequest) (*models.MenuItemResponse, error) {
	if errs := validator.Validate(req); errs != nil {
		s.logger.Warn("CreateMenuItem: validation failed: %s", validator.Describe(errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validator.Describe(errs))
	}

	item := req.ToDomainMenuItem()
	if item.Name == "" {
		return nil, fmt.Errorf("%w: name must not be blank", ErrInvalidInput)
	}

	var created *domain.MenuItem
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.ensureNameFree(txCtx, "CreateMenuItem", item.Name, 0); err != nil {
			return err
		}

		var err error
		created, err = s.menuRepo.Create(txCtx, item)
		if err != nil {
			if errors.Is(err, menuRepo.ErrDuplicateName) {
				return ErrDuplicateName
			}
			s.logger.Error("CreateMenuItem: repository error: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateMenuItem: created menu item id=%d, name=%s", created.ID, created.Name)
	return models.FromDomainMenuItem(created), nil
}

// Update частично обновляет позицию меню
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateMenuItemRequest) (*models.MenuItemResponse, error) {
	if errs := validator.Validate(req); errs != nil {
		s.logger.Warn("UpdateMenuItem: validation failed for id=%d: %s", id, validator.Describe(errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validator.Describe(errs))
	}

	var updated *domain.MenuItem
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		item, err := s.menuRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, menuRepo.ErrMenuItemNotFound) {
				s.logger.Warn("UpdateMenuItem: menu item id=%d not found", id)
				return ErrMenuItemNotFound
			}
			s.logger.Error("UpdateMenuItem: repository error for id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - get menu item: %v", ErrInternal, err)
		}

		req.ApplyTo(item)
		if item.Name == "" {
			return fmt.Errorf("%w: name must not be blank", ErrInvalidInput)
		}

		if req.Name != nil {
			if err := s.ensureNameFree(txCtx, "UpdateMenuItem", item.Name, id); err != nil {
				return err
			}
		}

		if err := s.menuRepo.Update(txCtx, item); err != nil {
			switch {
			case errors.Is(err, menuRepo.ErrMenuItemNotFound):
				return ErrMenuItemNotFound
			case errors.Is(err, menuRepo.ErrDuplicateName):
				return ErrDuplicateName
			}
			s.logger.Error("UpdateMenuItem: repository error for id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateMenuItem: updated menu item id=%d", id)
	return models.FromDomainMenuItem(updated), nil
}

// Delete удаляет позицию меню
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, menuRepo.ErrMenuItemNotFound) {
			s.logger.Warn("DeleteMenuItem: menu item id=%d not found", id)
			return ErrMenuItemNotFound
		}
		s.logger.Error("DeleteMenuItem: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteMenuItem: deleted menu item id=%d", id)
	return nil
}

func (s *Service) ensureNameFree(ctx context.Context, op, name string, excludeID int64) error {
	exists, err := s.menuRepo.NameExists(ctx, name, excludeID)
	if err != nil {
		s.logger.Error("%s: failed to check name %q: %v", op, name, err)
		return fmt.Errorf("%w: %s - check name: %v", ErrInternal, op, err)
	}
	if exists {
		s.logger.Warn("%s: menu item %q already exists", op, name)
		return ErrDuplicateName
	}
	return nil
}
