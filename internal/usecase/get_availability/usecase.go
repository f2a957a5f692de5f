package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/internal/engine"
)

// UseCase use case проверки доступности слотов
// Ничего не резервирует: ответ может устареть к моменту создания бронирования
type UseCase struct {
	settings     SettingsProvider
	engine       TableEngine
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	settings SettingsProvider,
	tableEngine TableEngine,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		settings:     settings,
		engine:       tableEngine,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает доступность каждого слота дня для группы гостей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s, guests=%d, location=%s",
		req.Date.Format(domain.DateFormat), req.GuestCount, locationString(req.Location))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("GetAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	var slots []domain.SlotAvailability

	// 3. Настройки и занятость читаются одним согласованным снимком
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 3.1. Часы работы
		hours, err := uc.settings.GetRestaurantHours(txCtx)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to get restaurant hours: %v", err)
			return fmt.Errorf("%w: failed to get restaurant hours: %v", ErrInternal, err)
		}

		// 3.2. Генерация слотов
		timeSlots, err := engine.GenerateTimeSlots(hours)
		if err != nil {
			if errors.Is(err, engine.ErrInvalidHours) {
				uc.logger.Error("GetAvailability: restaurant hours are misconfigured: %v", err)
				return fmt.Errorf("%w: %v", ErrConfiguration, err)
			}
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		// 3.3. Снимок столов и назначений на дату
		snapshot, err := uc.engine.LoadDay(txCtx, req.Date, req.Location)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to load day %s: %v", req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to load day: %v", ErrInternal, err)
		}

		// 3.4. Тот же подбор, что и при создании бронирования
		slots = make([]domain.SlotAvailability, 0, len(timeSlots))
		for _, slot := range timeSlots {
			_, ok := snapshot.Assign(slot, req.GuestCount)
			slots = append(slots, domain.SlotAvailability{Time: slot, Available: ok})
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConfiguration) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("GetAvailability: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.AvailabilityChecked()

	uc.logger.Info("GetAvailability: %d slots for date=%s, guests=%d",
		len(slots), req.Date.Format(domain.DateFormat), req.GuestCount)

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}

func locationString(l *domain.TableLocation) string {
	if l == nil {
		return "any"
	}
	return string(*l)
}
