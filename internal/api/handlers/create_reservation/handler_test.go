package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	createReservation "github.com/m04kA/RestaurantReservationService/internal/usecase/create_reservation"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createReservation.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"customer_name": "Jane Doe",
	"customer_email": "jane@example.com",
	"customer_phone": "+15550100",
	"date": "2026-11-20",
	"time_slot": "19:00",
	"guest_count": 6,
	"seating_preference": "Indoor"
}`

func TestHandler_Handle_Created(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, nopLogger{})

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createReservation.Request) bool {
		return req.GuestCount == 6 && req.TimeSlot.String() == "19:00" &&
			req.SeatingPreference != nil && *req.SeatingPreference == domain.LocationIndoor
	})).Return(&createReservation.Response{
		ID:              42,
		Message:         createReservation.SuccessMessage,
		Status:          "Pending Payment",
		AssignedTables:  []int64{4, 5},
		RequiresDeposit: true,
		DepositAmount:   50000,
	}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(validBody)))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"id": 42,
		"message": "Reservation created successfully",
		"status": "Pending Payment",
		"assignedTables": [4, 5],
		"requiresDeposit": true,
		"depositAmount": 50000
	}`, w.Body.String())
}

func TestHandler_Handle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no capacity", createReservation.ErrNoTablesAvailable, http.StatusConflict},
		{"concurrent", createReservation.ErrConcurrentBooking, http.StatusConflict},
		{"past date", createReservation.ErrInvalidDate, http.StatusBadRequest},
		{"off-grid time", fmt.Errorf("%w: 19:15", createReservation.ErrInvalidTimeSlot), http.StatusBadRequest},
		{"validation", fmt.Errorf("%w: invalid customer email", createReservation.ErrInvalidInput), http.StatusBadRequest},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			h := NewHandler(uc, nopLogger{})
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(validBody)))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_Handle_ValidationDetail(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, nopLogger{})
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: invalid customer email", createReservation.ErrInvalidInput))

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(validBody)))

	assert.JSONEq(t, `{"error":"некорректные данные бронирования: invalid customer email"}`, w.Body.String())
}

func TestHandler_Handle_MalformedRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `customer_name=Jane`},
		{"bad date", strings.Replace(validBody, "2026-11-20", "20/11/2026", 1)},
		{"bad time", strings.Replace(validBody, `"19:00"`, `"7pm"`, 1)},
		{"string guests", strings.Replace(validBody, `"guest_count": 6`, `"guest_count": "six"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			h := NewHandler(uc, nopLogger{})

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}
