package notifier

import "time"

// ReservationCreatedEvent сообщение о новом бронировании
type ReservationCreatedEvent struct {
	EventID         string    `json:"event_id"`
	OccurredAt      time.Time `json:"occurred_at"`
	ReservationID   int64     `json:"reservation_id"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	Date            string    `json:"date"`
	TimeSlot        string    `json:"time_slot"`
	GuestCount      int       `json:"guest_count"`
	Status          string    `json:"status"`
	TableIDs        []int64   `json:"table_ids"`
	DepositRequired bool      `json:"deposit_required"`
	DepositAmount   int64     `json:"deposit_amount"`
}
