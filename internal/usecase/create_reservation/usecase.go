package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/internal/engine"
	"github.com/m04kA/RestaurantReservationService/pkg/locker"
	"github.com/m04kA/RestaurantReservationService/pkg/txmanager"
)

const tracerName = "github.com/m04kA/RestaurantReservationService/internal/usecase/create_reservation"

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	engine          TableEngine
	settings        SettingsProvider
	locker          SlotLocker
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableEngine TableEngine,
	settings SettingsProvider,
	slotLocker SlotLocker,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		engine:          tableEngine,
		settings:        settings,
		locker:          slotLocker,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Подбор столов и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CreateReservation")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	uc.logger.Info("CreateReservation: date=%s, slot=%s, guests=%d, preference=%s",
		req.Date.Format(domain.DateFormat), req.TimeSlot, req.GuestCount, locationString(req.SeatingPreference))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("reservation.date", req.Date.Format(domain.DateFormat)),
		attribute.String("reservation.slot", req.TimeSlot.String()),
		attribute.Int("reservation.guests", req.GuestCount),
	)

	// 2. Дата не должна быть в прошлом
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Время должно совпадать с одним из слотов дня
	if err := uc.checkTimeSlot(ctx, req); err != nil {
		return nil, err
	}

	// 4. Блокировка слота
	release, err := uc.locker.Acquire(ctx, lockKey(req.Date, req.TimeSlot))
	if err != nil {
		if errors.Is(err, locker.ErrNotAcquired) {
			uc.logger.Warn("CreateReservation: slot %s %s is locked by another request",
				req.Date.Format(domain.DateFormat), req.TimeSlot)
			return nil, ErrConcurrentBooking
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			uc.logger.Warn("CreateReservation: request cancelled while acquiring slot lock: %v", err)
			return nil, ctxErr
		}
		// Транзакция остается единственной гарантией, продолжаем без блокировки
		uc.logger.Warn("CreateReservation: lock unavailable, continuing without it: %v", err)
		release = func() {}
	}
	defer release()

	var (
		created    *domain.Reservation
		assignment domain.TableAssignment
		deposit    domain.DepositConfig
	)

	// 5. Подбор столов и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Правила депозита, читаются из снимка транзакции мимо кэша
		cfg, err := uc.settings.GetDepositConfig(txCtx)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get deposit config: %v", err)
			return fmt.Errorf("%w: failed to get deposit config: %v", ErrInternal, err)
		}
		deposit = cfg

		// 5.2. Подбор столов с блокировкой строк каталога
		result, ok, err := uc.engine.Assign(txCtx, engine.AssignRequest{
			Date:       req.Date,
			TimeSlot:   req.TimeSlot,
			GuestCount: req.GuestCount,
			Location:   req.SeatingPreference,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: table assignment failed: %v", err)
			return fmt.Errorf("%w: failed to assign tables: %v", ErrInternal, err)
		}
		if !ok {
			uc.logger.Info("CreateReservation: no capacity for %d guests at %s %s",
				req.GuestCount, req.Date.Format(domain.DateFormat), req.TimeSlot)
			return ErrNoTablesAvailable
		}
		assignment = result

		// 5.3. Статус зависит от порога депозита
		requiresDeposit := deposit.RequiresDeposit(req.GuestCount)
		status := domain.StatusConfirmed
		if requiresDeposit {
			status = domain.StatusPendingPayment
		}

		primaryTableID := assignment.Tables[0].ID
		reservation := &domain.Reservation{
			CustomerName:      req.CustomerName,
			CustomerEmail:     req.CustomerEmail,
			CustomerPhone:     req.CustomerPhone,
			Date:              req.Date,
			TimeSlot:          req.TimeSlot,
			GuestCount:        req.GuestCount,
			SpecialRequests:   req.SpecialRequests,
			SeatingPreference: req.SeatingPreference,
			Status:            status,
			DepositRequired:   requiresDeposit,
			TableID:           &primaryTableID,
		}

		// 5.4. Сохраняем бронирование
		saved, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 5.5. По одной строке назначения на каждый стол
		for _, table := range assignment.Tables {
			if err := uc.reservationRepo.CreateAssignment(txCtx, domain.Assignment{
				ReservationID: saved.ID,
				TableID:       table.ID,
			}); err != nil {
				uc.logger.Error("CreateReservation: failed to assign table id=%d to reservation id=%d: %v",
					table.ID, saved.ID, err)
				return fmt.Errorf("%w: failed to create assignment: %v", ErrInternal, err)
			}
		}

		created = saved
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrNoTablesAvailable):
			uc.metrics.CapacityConflict()
			return nil, err
		case errors.Is(err, txmanager.ErrSerialization):
			uc.logger.Warn("CreateReservation: serialization conflict for %s %s: %v",
				req.Date.Format(domain.DateFormat), req.TimeSlot, err)
			return nil, ErrConcurrentBooking
		case errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	tableIDs := assignment.TableIDs()
	var depositAmount int64
	if created.DepositRequired {
		depositAmount = deposit.Amount
	}

	uc.metrics.ReservationCreated(string(created.Status))
	span.SetAttributes(attribute.Int64("reservation.id", created.ID))

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, tables=%v, joined=%t, status=%s",
		created.ID, tableIDs, assignment.Joined, created.Status)

	// 6. Уведомление после коммита; ошибка не отменяет бронирование
	if err := uc.notifier.ReservationCreated(ctx, created, tableIDs, depositAmount); err != nil {
		uc.logger.Warn("CreateReservation: notification for reservation id=%d failed: %v", created.ID, err)
	}

	return &Response{
		ID:              created.ID,
		Message:         SuccessMessage,
		Status:          string(created.Status),
		AssignedTables:  tableIDs,
		RequiresDeposit: created.DepositRequired,
		DepositAmount:   depositAmount,
	}, nil
}

// checkTimeSlot сверяет время с расписанием слотов
func (uc *UseCase) checkTimeSlot(ctx context.Context, req *Request) error {
	hours, err := uc.settings.GetRestaurantHours(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get restaurant hours: %v", err)
		return fmt.Errorf("%w: failed to get restaurant hours: %v", ErrInternal, err)
	}

	slots, err := engine.GenerateTimeSlots(hours)
	if err != nil {
		uc.logger.Error("CreateReservation: restaurant hours are misconfigured: %v", err)
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if !engine.ContainsSlot(slots, req.TimeSlot) {
		uc.logger.Warn("CreateReservation: time %s is not a bookable slot", req.TimeSlot)
		return fmt.Errorf("%w: %s is not one of the restaurant time slots", ErrInvalidTimeSlot, req.TimeSlot)
	}

	return nil
}

func locationString(l *domain.TableLocation) string {
	if l == nil {
		return "any"
	}
	return string(*l)
}
