package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/pkg/dbmetrics"
	"github.com/m04kA/RestaurantReservationService/pkg/psqlbuilder"
	"github.com/m04kA/RestaurantReservationService/pkg/types"
)

var reservationColumns = []string{
	"id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"date",
	"time_slot",
	"guest_count",
	"special_requests",
	"seating_preference",
	"status",
	"deposit_required",
	"deposit_paid",
	"table_id",
	"created_at",
	"updated_at",
}

// Repository журнал бронирований и назначений столов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование
// Вызывается внутри сериализуемой транзакции вместе с CreateAssignment
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"customer_name",
			"customer_email",
			"customer_phone",
			"date",
			"time_slot",
			"guest_count",
			"special_requests",
			"seating_preference",
			"status",
			"deposit_required",
			"deposit_paid",
			"table_id",
		).
		Values(
			res.CustomerName,
			res.CustomerEmail,
			res.CustomerPhone,
			res.Date.Format(domain.DateFormat),
			res.TimeSlot,
			res.GuestCount,
			res.SpecialRequests,
			res.SeatingPreference,
			res.Status,
			res.DepositRequired,
			res.DepositPaid,
			res.TableID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// CreateAssignment сохраняет назначение стола бронированию
func (r *Repository) CreateAssignment(ctx context.Context, a domain.Assignment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_assignments").
		Columns("reservation_id", "table_id").
		Values(a.ReservationID, a.TableID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateAssignment - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateAssignment - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ReplaceAssignments заменяет все назначения бронирования переданными столами
func (r *Repository) ReplaceAssignments(ctx context.Context, reservationID int64, tableIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservation_assignments").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAssignments - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAssignments - execute delete: %v", ErrExecQuery, err)
	}

	for _, tableID := range tableIDs {
		if err := r.CreateAssignment(ctx, domain.Assignment{ReservationID: reservationID, TableID: tableID}); err != nil {
			return err
		}
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List возвращает бронирования, упорядоченные по дате и слоту
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		OrderBy("date ASC", "time_slot ASC", "id ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": filter.Date.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// GetAssignedTables возвращает назначенные столы для набора бронирований одним запросом
func (r *Repository) GetAssignedTables(ctx context.Context, reservationIDs []int64) (map[int64][]domain.AssignedTable, error) {
	result := make(map[int64][]domain.AssignedTable, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("ra.reservation_id", "t.id", "t.name", "t.capacity").
		From("reservation_assignments ra").
		Join("tables t ON t.id = ra.table_id").
		Where(squirrel.Eq{"ra.reservation_id": reservationIDs}).
		OrderBy("ra.reservation_id ASC", "t.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAssignedTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAssignedTables - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			reservationID int64
			t             domain.AssignedTable
		)
		if err := rows.Scan(&reservationID, &t.ID, &t.Name, &t.Capacity); err != nil {
			return nil, fmt.Errorf("%w: GetAssignedTables - scan row: %v", ErrScanRow, err)
		}
		result[reservationID] = append(result[reservationID], t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAssignedTables - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ListAssignedTableIDs столы, занятые бронированиями в (date, timeSlot)
// Занимают стол все статусы, кроме Cancelled
func (r *Repository) ListAssignedTableIDs(ctx context.Context, date time.Time, timeSlot types.TimeString) ([]int64, error) {
	return r.ListOccupiedTableIDs(ctx, date, timeSlot, 0)
}

// ListOccupiedTableIDs то же, что ListAssignedTableIDs, но без столов бронирования excludeReservationID
// Используется при переносе бронирования, чтобы оно не конфликтовало само с собой
func (r *Repository) ListOccupiedTableIDs(ctx context.Context, date time.Time, timeSlot types.TimeString, excludeReservationID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("DISTINCT ra.table_id").
		From("reservation_assignments ra").
		Join("reservations r ON r.id = ra.reservation_id").
		Where(squirrel.Eq{
			"r.date":      date.Format(domain.DateFormat),
			"r.time_slot": timeSlot.String(),
		}).
		Where(squirrel.Eq{"r.status": domain.StatusStrings(domain.OccupyingStatuses)}).
		OrderBy("ra.table_id ASC")

	if excludeReservationID > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"r.id": excludeReservationID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedTableIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedTableIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListOccupiedTableIDs - scan table_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedTableIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// ListDayAssignments все занятые столы за день по слотам
func (r *Repository) ListDayAssignments(ctx context.Context, date time.Time) ([]domain.SlotAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("r.time_slot", "ra.table_id").
		From("reservation_assignments ra").
		Join("reservations r ON r.id = ra.reservation_id").
		Where(squirrel.Eq{"r.date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"r.status": domain.StatusStrings(domain.OccupyingStatuses)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDayAssignments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDayAssignments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	assignments := make([]domain.SlotAssignment, 0)
	for rows.Next() {
		var a domain.SlotAssignment
		if err := rows.Scan(&a.TimeSlot, &a.TableID); err != nil {
			return nil, fmt.Errorf("%w: ListDayAssignments - scan row: %v", ErrScanRow, err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDayAssignments - rows error: %v", ErrScanRow, err)
	}

	return assignments, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	return r.updateFields(ctx, "UpdateStatus", id, map[string]interface{}{"status": status})
}

// UpdateDeposit отмечает оплату депозита
func (r *Repository) UpdateDeposit(ctx context.Context, id int64, paid bool) error {
	return r.updateFields(ctx, "UpdateDeposit", id, map[string]interface{}{"deposit_paid": paid})
}

// Update перезаписывает редактируемые администратором поля
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	return r.updateFields(ctx, "Update", res.ID, map[string]interface{}{
		"customer_name":    res.CustomerName,
		"customer_email":   res.CustomerEmail,
		"customer_phone":   res.CustomerPhone,
		"date":             res.Date.Format(domain.DateFormat),
		"time_slot":        res.TimeSlot,
		"guest_count":      res.GuestCount,
		"special_requests": res.SpecialRequests,
		"status":           res.Status,
		"table_id":         res.TableID,
	})
}

// Delete удаляет бронирование; назначения удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) updateFields(ctx context.Context, method string, id int64, fields map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		specialRequests      sql.NullString
		seatingPreference    sql.NullString
		tableID              sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.CustomerName,
		&res.CustomerEmail,
		&res.CustomerPhone,
		&res.Date,
		&res.TimeSlot,
		&res.GuestCount,
		&specialRequests,
		&seatingPreference,
		&res.Status,
		&res.DepositRequired,
		&res.DepositPaid,
		&tableID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if specialRequests.Valid {
		res.SpecialRequests = &specialRequests.String
	}
	if seatingPreference.Valid {
		location := domain.TableLocation(seatingPreference.String)
		res.SeatingPreference = &location
	}
	if tableID.Valid {
		res.TableID = &tableID.Int64
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}
