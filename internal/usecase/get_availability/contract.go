package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/internal/engine"
)

// SettingsProvider источник часов работы
// nil без ошибки означает, что настройка не задана
type SettingsProvider interface {
	GetRestaurantHours(ctx context.Context) (*domain.RestaurantHours, error)
}

// TableEngine загрузка снимка занятости столов на день
type TableEngine interface {
	LoadDay(ctx context.Context, date time.Time, location *domain.TableLocation) (*engine.DaySnapshot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики проверок доступности
type Metrics interface {
	AvailabilityChecked()
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
