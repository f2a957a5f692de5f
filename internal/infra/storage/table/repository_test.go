package table

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/pkg/dbmetrics"
)

const activeReservationsQuery = `SELECT COUNT\(\*\) FROM reservations r ` +
	`WHERE r\.status IN \(\$1,\$2\) ` +
	`AND \(r\.table_id = \$3 OR EXISTS \(SELECT 1 FROM reservation_assignments ra ` +
	`WHERE ra\.reservation_id = r\.id AND ra\.table_id = \$4\)\)`

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_HasActiveReservations(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{name: "confirmed or pending reservation", count: 2, want: true},
		{name: "only completed or cancelled", count: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)

			mock.ExpectQuery(activeReservationsQuery).
				WithArgs("Confirmed", "Pending Payment", int64(7), int64(7)).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			got, err := repo.HasActiveReservations(context.Background(), 7)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_HasActiveReservations_ScanError(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(activeReservationsQuery).WillReturnError(sql.ErrConnDone)

	_, err := repo.HasActiveReservations(context.Background(), 7)

	assert.ErrorIs(t, err, ErrScanRow)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newTestRepository(t)

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, name, capacity, location, type, status, is_joinable, created_at, updated_at ` +
		`FROM tables WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(tableColumns).
			AddRow(int64(7), "T7", 4, "Indoor", "Booth", "Blocked", true, now, now))

	got, err := repo.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "T7", got.Name)
	assert.Equal(t, domain.TableStatusBlocked, got.Status)
	assert.False(t, got.IsBookable())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`FROM tables WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(tableColumns))

	_, err := repo.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrTableNotFound)
}
