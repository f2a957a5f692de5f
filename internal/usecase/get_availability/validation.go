package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.GuestCount <= 0 {
		return fmt.Errorf("%w: guests must be positive", ErrInvalidInput)
	}

	if req.GuestCount > domain.MaxGuestCount {
		return fmt.Errorf("%w: guests must not exceed %d", ErrInvalidInput, domain.MaxGuestCount)
	}

	if req.Location != nil && !req.Location.IsValid() {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, *req.Location)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
// Сравниваются только календарные даты, часовой пояс даты запроса не учитывается
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
