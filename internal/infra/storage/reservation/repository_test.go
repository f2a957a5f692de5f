package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/pkg/dbmetrics"
	"github.com/m04kA/RestaurantReservationService/pkg/types"
)

const occupancyQuery = `SELECT DISTINCT ra\.table_id FROM reservation_assignments ra ` +
	`JOIN reservations r ON r\.id = ra\.reservation_id ` +
	`WHERE .*r\.date = \$1 AND r\.time_slot = \$2.* AND r\.status IN \(\$3,\$4,\$5\)`

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

var slotDate = time.Date(2026, 11, 21, 0, 0, 0, 0, time.UTC)

func TestRepository_ListAssignedTableIDs_CompletedStillOccupies(t *testing.T) {
	repo, mock := newTestRepository(t)

	// Completed среди занимающих статусов, Cancelled нет
	mock.ExpectQuery(occupancyQuery + ` ORDER BY ra\.table_id ASC`).
		WithArgs("2026-11-21", "20:30", "Pending Payment", "Confirmed", "Completed").
		WillReturnRows(sqlmock.NewRows([]string{"table_id"}).AddRow(int64(4)).AddRow(int64(9)))

	ids, err := repo.ListAssignedTableIDs(context.Background(), slotDate, types.MustTimeString("20:30"))

	require.NoError(t, err)
	assert.Equal(t, []int64{4, 9}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListOccupiedTableIDs_ExcludesReservation(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(occupancyQuery + ` AND r\.id <> \$6 ORDER BY ra\.table_id ASC`).
		WithArgs("2026-11-21", "20:30", "Pending Payment", "Confirmed", "Completed", int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"table_id"}).AddRow(int64(9)))

	ids, err := repo.ListOccupiedTableIDs(context.Background(), slotDate, types.MustTimeString("20:30"), 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{9}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListOccupiedTableIDs_QueryError(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(occupancyQuery).WillReturnError(errors.New("connection reset"))

	_, err := repo.ListOccupiedTableIDs(context.Background(), slotDate, types.MustTimeString("20:30"), 0)

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListDayAssignments(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT r\.time_slot, ra\.table_id FROM reservation_assignments ra ` +
		`JOIN reservations r ON r\.id = ra\.reservation_id ` +
		`WHERE r\.date = \$1 AND r\.status IN \(\$2,\$3,\$4\)`).
		WithArgs("2026-11-21", "Pending Payment", "Confirmed", "Completed").
		WillReturnRows(sqlmock.NewRows([]string{"time_slot", "table_id"}).
			AddRow("19:00", int64(4)).
			AddRow("20:30", int64(9)))

	assignments, err := repo.ListDayAssignments(context.Background(), slotDate)

	require.NoError(t, err)
	assert.Equal(t, []domain.SlotAssignment{
		{TimeSlot: types.MustTimeString("19:00"), TableID: 4},
		{TimeSlot: types.MustTimeString("20:30"), TableID: 9},
	}, assignments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListDayAssignments_BadSlot(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT r\.time_slot, ra\.table_id FROM reservation_assignments ra`).
		WillReturnRows(sqlmock.NewRows([]string{"time_slot", "table_id"}).AddRow("7pm", int64(4)))

	_, err := repo.ListDayAssignments(context.Background(), slotDate)

	assert.ErrorIs(t, err, ErrScanRow)
}
