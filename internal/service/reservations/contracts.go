package reservations

import (
	"context"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	GetAssignedTables(ctx context.Context, reservationIDs []int64) (map[int64][]domain.AssignedTable, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	UpdateDeposit(ctx context.Context, id int64, paid bool) error
	Update(ctx context.Context, res *domain.Reservation) error
	ReplaceAssignments(ctx context.Context, reservationID int64, tableIDs []int64) error
	ListOccupiedTableIDs(ctx context.Context, date time.Time, timeSlot types.TimeString, excludeReservationID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}

// TableRepository интерфейс чтения каталога столов
type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
