package notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
)

// NewReservationCreatedEvent собирает событие из сохраненного бронирования
func NewReservationCreatedEvent(res *domain.Reservation, tableIDs []int64, depositAmount int64, now time.Time) ReservationCreatedEvent {
	ids := make([]int64, len(tableIDs))
	copy(ids, tableIDs)

	return ReservationCreatedEvent{
		EventID:         uuid.NewString(),
		OccurredAt:      now.UTC(),
		ReservationID:   res.ID,
		CustomerName:    res.CustomerName,
		CustomerEmail:   res.CustomerEmail,
		CustomerPhone:   res.CustomerPhone,
		Date:            res.Date.Format(domain.DateFormat),
		TimeSlot:        res.TimeSlot.String(),
		GuestCount:      res.GuestCount,
		Status:          string(res.Status),
		TableIDs:        ids,
		DepositRequired: res.DepositRequired,
		DepositAmount:   depositAmount,
	}
}
