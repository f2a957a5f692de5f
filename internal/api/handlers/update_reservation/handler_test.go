package update_reservation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/RestaurantReservationService/internal/service/reservations"
	"github.com/m04kA/RestaurantReservationService/internal/service/reservations/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id int64, req *models.UpdateReservationRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"customer_name": "Anna",
	"customer_email": "anna@example.com",
	"customer_phone": "+7 900 000-00-00",
	"date": "2026-11-20",
	"time_slot": "19:00",
	"guest_count": 4,
	"status": "Confirmed",
	"table_id": 5
}`

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{name: "updated", wantStatus: http.StatusOK, wantBody: "Reservation updated"},
		{name: "validation", svcErr: fmt.Errorf("%w: %s", reservations.ErrInvalidInput, "CustomerEmail: email"),
			wantStatus: http.StatusBadRequest, wantBody: "CustomerEmail: email"},
		{name: "status", svcErr: reservations.ErrInvalidStatus, wantStatus: http.StatusBadRequest},
		{name: "not found", svcErr: reservations.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "unknown table", svcErr: fmt.Errorf("%w: id=5", reservations.ErrTableNotFound), wantStatus: http.StatusBadRequest},
		{name: "table occupied", svcErr: fmt.Errorf("%w: table %q is taken at 2026-11-20 19:00", reservations.ErrTableOccupied, "T5"),
			wantStatus: http.StatusConflict, wantBody: "стол занят"},
		{name: "internal", svcErr: reservations.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(req *models.UpdateReservationRequest) bool {
				return req.TableID != nil && *req.TableID == 5 && req.TimeSlot == "19:00"
			})).Return(tt.svcErr)

			router := mux.NewRouter()
			router.HandleFunc("/api/v1/admin/reservations/{id}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/admin/reservations/5", strings.NewReader(validBody)))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			svc.AssertExpectations(t)
		})
	}
}
