package domain

import (
	"time"

	"github.com/m04kA/RestaurantReservationService/pkg/types"
)

// ReservationStatus статус бронирования
// Строгой машины состояний нет: администратор может выставить любой допустимый статус
type ReservationStatus string

const (
	StatusPendingPayment ReservationStatus = "Pending Payment"
	StatusConfirmed      ReservationStatus = "Confirmed"
	StatusCompleted      ReservationStatus = "Completed"
	StatusCancelled      ReservationStatus = "Cancelled"
)

// IsValid проверяет допустимость статуса
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// OccupiesTables true для всех статусов, кроме Cancelled
// Completed тоже занимает стол: слот не освобождается задним числом
func (s ReservationStatus) OccupiesTables() bool {
	return containsStatus(OccupyingStatuses, s)
}

// StatusStrings значения статусов для SQL фильтров
func StatusStrings(statuses []ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func containsStatus(statuses []ReservationStatus, s ReservationStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Reservation бронирование
type Reservation struct {
	ID                int64
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	Date              time.Time
	TimeSlot          types.TimeString
	GuestCount        int
	SpecialRequests   *string
	SeatingPreference *TableLocation
	Status            ReservationStatus
	DepositRequired   bool
	DepositPaid       bool
	TableID           *int64 // основной (первый назначенный) стол

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assignment связь бронирования со столом
type Assignment struct {
	ReservationID int64
	TableID       int64
}

// SlotAssignment занятый стол в конкретном слоте дня
type SlotAssignment struct {
	TimeSlot types.TimeString
	TableID  int64
}

// AssignedTable стол, назначенный бронированию (для ответов API)
type AssignedTable struct {
	ID       int64
	Name     string
	Capacity int
}

// ReservationsFilter фильтр списка бронирований
type ReservationsFilter struct {
	Date *time.Time
}
