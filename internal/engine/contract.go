package engine

import (
	"context"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/pkg/types"
)

// TableRepository каталог столов
type TableRepository interface {
	List(ctx context.Context, filter domain.TablesFilter) ([]domain.Table, error)
}

// ReservationRepository журнал бронирований
type ReservationRepository interface {
	ListAssignedTableIDs(ctx context.Context, date time.Time, timeSlot types.TimeString) ([]int64, error)
	ListDayAssignments(ctx context.Context, date time.Time) ([]domain.SlotAssignment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
