package models

import (
	"strings"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
)

// ListReservationsRequest фильтр списка бронирований
type ListReservationsRequest struct {
	Date *time.Time
}

// UpdateReservationRequest полное обновление бронирования администратором
// Движок подбора столов не вызывается: администратор может сознательно пересадить гостей
type UpdateReservationRequest struct {
	CustomerName    string  `json:"customer_name" validate:"required,max=255"`
	CustomerEmail   string  `json:"customer_email" validate:"required,email"`
	CustomerPhone   string  `json:"customer_phone" validate:"required,max=50"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot        string  `json:"time_slot" validate:"required,datetime=15:04"`
	GuestCount      int     `json:"guest_count" validate:"gt=0"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
	Status          string  `json:"status" validate:"required"`
	TableID         *int64  `json:"table_id,omitempty" validate:"omitempty,gt=0"`
}

// AssignedTableResponse стол, назначенный бронированию
type AssignedTableResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// ReservationResponse DTO бронирования со всеми назначенными столами
type ReservationResponse struct {
	ID                int64                   `json:"id"`
	CustomerName      string                  `json:"customerName"`
	CustomerEmail     string                  `json:"customerEmail"`
	CustomerPhone     string                  `json:"customerPhone"`
	Date              string                  `json:"date"`
	TimeSlot          string                  `json:"timeSlot"`
	GuestCount        int                     `json:"guestCount"`
	SpecialRequests   *string                 `json:"specialRequests,omitempty"`
	SeatingPreference *string                 `json:"seatingPreference,omitempty"`
	Status            string                  `json:"status"`
	DepositRequired   bool                    `json:"depositRequired"`
	DepositPaid       bool                    `json:"depositPaid"`
	TableID           *int64                  `json:"tableId,omitempty"`
	AssignedTables    []AssignedTableResponse `json:"assignedTables"`
	TableNames        string                  `json:"tableNames"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

// FromDomainReservation конвертирует domain модель в DTO
// Имена столов объединяются через " + ", например "T1 + T2"
func FromDomainReservation(r *domain.Reservation, tables []domain.AssignedTable) *ReservationResponse {
	if r == nil {
		return nil
	}

	assigned := make([]AssignedTableResponse, 0, len(tables))
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		assigned = append(assigned, AssignedTableResponse{ID: t.ID, Name: t.Name, Capacity: t.Capacity})
		names = append(names, t.Name)
	}

	var preference *string
	if r.SeatingPreference != nil {
		p := string(*r.SeatingPreference)
		preference = &p
	}

	return &ReservationResponse{
		ID:                r.ID,
		CustomerName:      r.CustomerName,
		CustomerEmail:     r.CustomerEmail,
		CustomerPhone:     r.CustomerPhone,
		Date:              r.Date.Format(domain.DateFormat),
		TimeSlot:          r.TimeSlot.String(),
		GuestCount:        r.GuestCount,
		SpecialRequests:   r.SpecialRequests,
		SeatingPreference: preference,
		Status:            string(r.Status),
		DepositRequired:   r.DepositRequired,
		DepositPaid:       r.DepositPaid,
		TableID:           r.TableID,
		AssignedTables:    assigned,
		TableNames:        strings.Join(names, " + "),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
