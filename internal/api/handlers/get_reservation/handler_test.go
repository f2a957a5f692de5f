package get_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
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

func (m *MockService) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/reservations/{id}", h.Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler_Handle(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, nopLogger{})

	svc.On("GetByID", mock.Anything, int64(12)).Return(&models.ReservationResponse{
		ID:         12,
		TableNames: "T4 + T5",
		AssignedTables: []models.AssignedTableResponse{
			{ID: 4, Name: "T4", Capacity: 4},
			{ID: 5, Name: "T5", Capacity: 2},
		},
	}, nil)
	svc.On("GetByID", mock.Anything, int64(404)).Return(nil, reservations.ErrReservationNotFound)

	w := serve(h, "/api/v1/reservations/12")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tableNames":"T4 + T5"`)

	assert.Equal(t, http.StatusNotFound, serve(h, "/api/v1/reservations/404").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/reservations/abc").Code)
}
