package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	reservationRepo "github.com/m04kA/RestaurantReservationService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/RestaurantReservationService/internal/infra/storage/table"
	"github.com/m04kA/RestaurantReservationService/internal/service/reservations/models"
	"github.com/m04kA/RestaurantReservationService/pkg/types"
	"github.com/m04kA/RestaurantReservationService/pkg/validator"
)

// Service сервис чтения и администрирования бронирований
type Service struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, tableRepo TableRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID возвращает бронирование вместе со всеми назначенными столами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetReservation: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	tables, err := s.reservationRepo.GetAssignedTables(ctx, []int64{id})
	if err != nil {
		s.logger.Error("GetReservation: failed to load tables for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - assigned tables: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation, tables[id]), nil
}

// List возвращает бронирования (опционально на дату), упорядоченные по дате и слоту
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) ([]models.ReservationResponse, error) {
	filter := domain.ReservationsFilter{}
	if req != nil {
		filter.Date = req.Date
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	ids := make([]int64, len(list))
	for i, r := range list {
		ids[i] = r.ID
	}

	tables, err := s.reservationRepo.GetAssignedTables(ctx, ids)
	if err != nil {
		s.logger.Error("ListReservations: failed to load assigned tables: %v", err)
		return nil, fmt.Errorf("%w: List - assigned tables: %v", ErrInternal, err)
	}

	result := make([]models.ReservationResponse, 0, len(list))
	for _, r := range list {
		result = append(result, *models.FromDomainReservation(r, tables[r.ID]))
	}

	s.logger.Info("ListReservations: fetched %d reservations", len(result))
	return result, nil
}

// UpdateStatus выставляет любой допустимый статус
// Возврат отмененного бронирования в занимающий статус проверяет, что его столы еще свободны
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	newStatus := domain.ReservationStatus(status)
	if !newStatus.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status %q for reservation id=%d", status, id)
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.getForUpdate(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if !current.Status.OccupiesTables() && newStatus.OccupiesTables() {
			tableIDs, err := s.currentTableIDs(txCtx, current)
			if err != nil {
				return err
			}
			if err := s.ensureTablesFree(txCtx, id, current.Date, current.TimeSlot, tableIDs); err != nil {
				return err
			}
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateStatus: repository error for id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("UpdateStatus: reservation id=%d is now %s", id, newStatus)
	return nil
}

// UpdateDeposit отмечает оплату депозита
func (s *Service) UpdateDeposit(ctx context.Context, id int64, paid bool) error {
	if err := s.reservationRepo.UpdateDeposit(ctx, id, paid); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateDeposit: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateDeposit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDeposit: reservation id=%d deposit_paid=%t", id, paid)
	return nil
}

// Update перезаписывает бронирование
// Если меняется основной стол, назначения заменяются этим столом в той же транзакции.
// Перенос на другой стол, дату или слот допускается только на свободные незаблокированные столы
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateReservationRequest) error {
	if errs := validator.Validate(req); errs != nil {
		s.logger.Warn("UpdateReservation: validation failed for id=%d: %s", id, validator.Describe(errs))
		return fmt.Errorf("%w: %s", ErrInvalidInput, validator.Describe(errs))
	}

	status := domain.ReservationStatus(req.Status)
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}
	slot, err := types.NewTimeStringFromString(req.TimeSlot)
	if err != nil {
		return fmt.Errorf("%w: time slot: %v", ErrInvalidInput, err)
	}

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.getForUpdate(txCtx, "UpdateReservation", id)
		if err != nil {
			return err
		}

		tableChanged := req.TableID != nil && (current.TableID == nil || *current.TableID != *req.TableID)
		moved := current.Date.Format(domain.DateFormat) != date.Format(domain.DateFormat) ||
			current.TimeSlot.String() != slot.String()
		reoccupies := !current.Status.OccupiesTables()

		if status.OccupiesTables() && (tableChanged || moved || reoccupies) {
			var tableIDs []int64
			if tableChanged {
				tableIDs = []int64{*req.TableID}
			} else if tableIDs, err = s.currentTableIDs(txCtx, current); err != nil {
				return err
			}
			if err := s.ensureTablesFree(txCtx, id, date, slot, tableIDs); err != nil {
				return err
			}
		}

		current.CustomerName = req.CustomerName
		current.CustomerEmail = req.CustomerEmail
		current.CustomerPhone = req.CustomerPhone
		current.Date = date
		current.TimeSlot = slot
		current.GuestCount = req.GuestCount
		current.SpecialRequests = req.SpecialRequests
		current.Status = status
		if req.TableID != nil {
			current.TableID = req.TableID
		}

		if err := s.reservationRepo.Update(txCtx, current); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateReservation: repository error for id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if tableChanged {
			if err := s.reservationRepo.ReplaceAssignments(txCtx, id, []int64{*req.TableID}); err != nil {
				s.logger.Error("UpdateReservation: failed to reassign tables for id=%d: %v", id, err)
				return fmt.Errorf("%w: Update - replace assignments: %v", ErrInternal, err)
			}
			s.logger.Info("UpdateReservation: reservation id=%d moved to table id=%d", id, *req.TableID)
		}

		s.logger.Info("UpdateReservation: reservation id=%d updated", id)
		return nil
	})
}

// Delete удаляет бронирование вместе с назначениями
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("DeleteReservation: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteReservation: reservation id=%d deleted", id)
	return nil
}

func (s *Service) getForUpdate(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	current, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: failed to get id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get reservation: %v", ErrInternal, op, err)
	}
	return current, nil
}

// currentTableIDs столы бронирования; для записей без назначений берется основной стол
func (s *Service) currentTableIDs(ctx context.Context, res *domain.Reservation) ([]int64, error) {
	assigned, err := s.reservationRepo.GetAssignedTables(ctx, []int64{res.ID})
	if err != nil {
		s.logger.Error("UpdateReservation: failed to load tables for id=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: currentTableIDs - assigned tables: %v", ErrInternal, err)
	}

	ids := make([]int64, 0, len(assigned[res.ID]))
	for _, t := range assigned[res.ID] {
		ids = append(ids, t.ID)
	}
	if len(ids) == 0 && res.TableID != nil {
		ids = append(ids, *res.TableID)
	}
	return ids, nil
}

// ensureTablesFree столы должны существовать, быть доступны и не заняты другими бронированиями в слоте
func (s *Service) ensureTablesFree(ctx context.Context, reservationID int64, date time.Time, slot types.TimeString, tableIDs []int64) error {
	if len(tableIDs) == 0 {
		return nil
	}

	occupied, err := s.reservationRepo.ListOccupiedTableIDs(ctx, date, slot, reservationID)
	if err != nil {
		s.logger.Error("UpdateReservation: failed to load occupancy for %s %s: %v", date.Format(domain.DateFormat), slot, err)
		return fmt.Errorf("%w: ensureTablesFree - occupancy: %v", ErrInternal, err)
	}
	busy := make(map[int64]struct{}, len(occupied))
	for _, tableID := range occupied {
		busy[tableID] = struct{}{}
	}

	for _, tableID := range tableIDs {
		table, err := s.tableRepo.GetByID(ctx, tableID)
		if err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				return fmt.Errorf("%w: id=%d", ErrTableNotFound, tableID)
			}
			s.logger.Error("UpdateReservation: failed to get table id=%d: %v", tableID, err)
			return fmt.Errorf("%w: ensureTablesFree - get table: %v", ErrInternal, err)
		}
		if !table.IsBookable() {
			s.logger.Warn("UpdateReservation: table id=%d is blocked", tableID)
			return fmt.Errorf("%w: table %q is blocked", ErrTableOccupied, table.Name)
		}
		if _, ok := busy[tableID]; ok {
			s.logger.Warn("UpdateReservation: table id=%d is taken at %s %s", tableID, date.Format(domain.DateFormat), slot)
			return fmt.Errorf("%w: table %q is taken at %s %s", ErrTableOccupied, table.Name, date.Format(domain.DateFormat), slot)
		}
	}
	return nil
}
