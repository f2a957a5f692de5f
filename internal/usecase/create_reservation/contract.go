package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/internal/engine"
	"github.com/m04kA/RestaurantReservationService/pkg/locker"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	CreateAssignment(ctx context.Context, a domain.Assignment) error
}

// TableEngine подбор столов на слот
type TableEngine interface {
	Assign(ctx context.Context, req engine.AssignRequest) (domain.TableAssignment, bool, error)
}

// SettingsProvider типизированные настройки ресторана
type SettingsProvider interface {
	GetRestaurantHours(ctx context.Context) (*domain.RestaurantHours, error)
	GetDepositConfig(ctx context.Context) (domain.DepositConfig, error)
}

// SlotLocker блокировка слота на время транзакции
type SlotLocker interface {
	Acquire(ctx context.Context, key string) (locker.ReleaseFunc, error)
}

// Notifier уведомление о новом бронировании
type Notifier interface {
	ReservationCreated(ctx context.Context, res *domain.Reservation, tableIDs []int64, depositAmount int64) error
}

// Metrics счетчики бронирований
type Metrics interface {
	ReservationCreated(status string)
	CapacityConflict()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
