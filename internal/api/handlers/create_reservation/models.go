package create_reservation

import (
	"errors"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	createReservation "github.com/m04kA/RestaurantReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/RestaurantReservationService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time slot")
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerName      string  `json:"customer_name"`
	CustomerEmail     string  `json:"customer_email"`
	CustomerPhone     string  `json:"customer_phone"`
	Date              string  `json:"date"`      // "2026-11-20"
	TimeSlot          string  `json:"time_slot"` // "19:00"
	GuestCount        int     `json:"guest_count"`
	SpecialRequests   *string `json:"special_requests,omitempty"`
	SeatingPreference *string `json:"seating_preference,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	ID              int64   `json:"id"`
	Message         string  `json:"message"`
	Status          string  `json:"status"`
	AssignedTables  []int64 `json:"assignedTables"`
	RequiresDeposit bool    `json:"requiresDeposit"`
	DepositAmount   int64   `json:"depositAmount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	timeSlot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, errInvalidTime
	}

	req := &createReservation.Request{
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Date:            date,
		TimeSlot:        timeSlot,
		GuestCount:      r.GuestCount,
		SpecialRequests: r.SpecialRequests,
	}

	// Пустая строка означает "без предпочтений"
	if r.SeatingPreference != nil && *r.SeatingPreference != "" {
		preference := domain.TableLocation(*r.SeatingPreference)
		req.SeatingPreference = &preference
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	tables := resp.AssignedTables
	if tables == nil {
		tables = []int64{}
	}
	return &CreateReservationResponse{
		ID:              resp.ID,
		Message:         resp.Message,
		Status:          resp.Status,
		AssignedTables:  tables,
		RequiresDeposit: resp.RequiresDeposit,
		DepositAmount:   resp.DepositAmount,
	}
}
