package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/pkg/validator"
)

const maxPhoneLen = 50

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLen {
		return fmt.Errorf("%w: customer name must not exceed %d characters", ErrInvalidInput, domain.MaxCustomerNameLen)
	}

	if err := validator.Var(req.CustomerEmail, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid customer email", ErrInvalidInput)
	}

	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}
	if len(phone) > maxPhoneLen {
		return fmt.Errorf("%w: customer phone must not exceed %d characters", ErrInvalidInput, maxPhoneLen)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время слота указано
	if req.TimeSlot.IsZero() {
		return fmt.Errorf("%w: time slot is required", ErrInvalidInput)
	}

	if req.GuestCount <= 0 {
		return fmt.Errorf("%w: guest count must be positive", ErrInvalidInput)
	}
	if req.GuestCount > domain.MaxGuestCount {
		return fmt.Errorf("%w: guest count must not exceed %d", ErrInvalidInput, domain.MaxGuestCount)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLen {
		return fmt.Errorf("%w: special requests must not exceed %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLen)
	}

	if req.SeatingPreference != nil && !req.SeatingPreference.IsValid() {
		return fmt.Errorf("%w: unknown seating preference %q", ErrInvalidInput, *req.SeatingPreference)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

// lockKey ключ блокировки слота
func lockKey(date time.Time, slot fmt.Stringer) string {
	return "reservation:" + date.Format(domain.DateFormat) + "|" + slot.String()
}
