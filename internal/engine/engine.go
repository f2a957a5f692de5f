package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/pkg/types"
)

// Engine подбирает столы по данным каталога и журнала бронирований
type Engine struct {
	tables       TableRepository
	reservations ReservationRepository
	logger       Logger
}

func NewEngine(tables TableRepository, reservations ReservationRepository, logger Logger) *Engine {
	return &Engine{
		tables:       tables,
		reservations: reservations,
		logger:       logger,
	}
}

// AssignRequest параметры подбора
type AssignRequest struct {
	Date       time.Time
	TimeSlot   types.TimeString
	GuestCount int
	Location   *domain.TableLocation
}

// Assign подбирает столы для одного слота
// Внутри транзакции строки столов блокируются (FOR UPDATE), поэтому решение можно сразу записывать
func (e *Engine) Assign(ctx context.Context, req AssignRequest) (domain.TableAssignment, bool, error) {
	if req.GuestCount <= 0 {
		return domain.TableAssignment{}, false, ErrInvalidGuestCount
	}

	blocked := domain.TableStatusBlocked
	tables, err := e.tables.List(ctx, domain.TablesFilter{
		Location:      req.Location,
		ExcludeStatus: &blocked,
		LockRows:      true,
	})
	if err != nil {
		e.logger.Error("Assign: failed to list tables: %v", err)
		return domain.TableAssignment{}, false, fmt.Errorf("%w: Assign - list tables: %v", ErrInternal, err)
	}

	occupiedIDs, err := e.reservations.ListAssignedTableIDs(ctx, req.Date, req.TimeSlot)
	if err != nil {
		e.logger.Error("Assign: failed to list occupied tables for %s %s: %v",
			req.Date.Format(domain.DateFormat), req.TimeSlot, err)
		return domain.TableAssignment{}, false, fmt.Errorf("%w: Assign - list occupied tables: %v", ErrInternal, err)
	}

	occupied := make(map[int64]struct{}, len(occupiedIDs))
	for _, id := range occupiedIDs {
		occupied[id] = struct{}{}
	}

	assignment, ok := SelectTables(tables, occupied, req.GuestCount)
	return assignment, ok, nil
}

// DaySnapshot состояние столов на одну дату; используется для проверки доступности всех слотов
// двумя запросами вместо двух запросов на каждый слот
type DaySnapshot struct {
	tables   []domain.Table
	occupied map[string]map[int64]struct{}
}

// LoadDay загружает столы и занятость на дату
func (e *Engine) LoadDay(ctx context.Context, date time.Time, location *domain.TableLocation) (*DaySnapshot, error) {
	blocked := domain.TableStatusBlocked
	tables, err := e.tables.List(ctx, domain.TablesFilter{
		Location:      location,
		ExcludeStatus: &blocked,
	})
	if err != nil {
		e.logger.Error("LoadDay: failed to list tables: %v", err)
		return nil, fmt.Errorf("%w: LoadDay - list tables: %v", ErrInternal, err)
	}

	assignments, err := e.reservations.ListDayAssignments(ctx, date)
	if err != nil {
		e.logger.Error("LoadDay: failed to list assignments for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: LoadDay - list assignments: %v", ErrInternal, err)
	}

	return NewDaySnapshot(tables, assignments), nil
}

// NewDaySnapshot собирает снимок из уже загруженных данных
func NewDaySnapshot(tables []domain.Table, assignments []domain.SlotAssignment) *DaySnapshot {
	occupied := make(map[string]map[int64]struct{})
	for _, a := range assignments {
		key := a.TimeSlot.String()
		if occupied[key] == nil {
			occupied[key] = make(map[int64]struct{})
		}
		occupied[key][a.TableID] = struct{}{}
	}

	return &DaySnapshot{tables: tables, occupied: occupied}
}

// Assign подбор столов в слоте по снимку; тот же алгоритм, что и при создании бронирования
func (s *DaySnapshot) Assign(slot types.TimeString, guestCount int) (domain.TableAssignment, bool) {
	return SelectTables(s.tables, s.occupied[slot.String()], guestCount)
}
