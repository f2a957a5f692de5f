package engine

import (
	"fmt"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/pkg/types"
)

// ResolvedHours часы работы после подстановки значений по умолчанию
type ResolvedHours struct {
	Open     types.TimeString
	Close    types.TimeString
	Interval int
}

// ResolveHours подставляет значения по умолчанию вместо пустых и нечитаемых полей
// Нулевой интервал считается незаданным; отрицательный интервал и open > close дают ErrInvalidHours
func ResolveHours(hours domain.RestaurantHours) (ResolvedHours, error) {
	open, err := types.NewTimeStringFromString(hours.Open)
	if err != nil {
		open = types.MustTimeString(domain.DefaultOpenTime)
	}

	closing, err := types.NewTimeStringFromString(hours.Close)
	if err != nil {
		closing = types.MustTimeString(domain.DefaultCloseTime)
	}

	interval := hours.Interval
	if interval == 0 {
		interval = domain.DefaultIntervalMinutes
	}

	if interval < 0 {
		return ResolvedHours{}, fmt.Errorf("%w: interval %d must be positive", ErrInvalidHours, interval)
	}
	if open.IsAfter(closing) {
		return ResolvedHours{}, fmt.Errorf("%w: open %s is after close %s", ErrInvalidHours, open, closing)
	}

	return ResolvedHours{Open: open, Close: closing, Interval: interval}, nil
}

// GenerateTimeSlots строит упорядоченный список слотов дня
// hours == nil означает, что настройка отсутствует, и возвращается фиксированный список по умолчанию
// Слоты идут от открытия с шагом Interval; время закрытия включается, если попадает на шаг
func GenerateTimeSlots(hours *domain.RestaurantHours) ([]types.TimeString, error) {
	if hours == nil {
		return DefaultTimeSlots(), nil
	}

	resolved, err := ResolveHours(*hours)
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0, (resolved.Close.Minutes()-resolved.Open.Minutes())/resolved.Interval+1)
	current := resolved.Open

	for !current.IsAfter(resolved.Close) {
		slots = append(slots, current)

		next, err := current.AddMinutes(resolved.Interval)
		if err != nil {
			// следующий слот вышел бы за полночь
			break
		}
		current = next
	}

	return slots, nil
}

// DefaultTimeSlots фиксированный список слотов
func DefaultTimeSlots() []types.TimeString {
	slots := make([]types.TimeString, len(domain.DefaultTimeSlots))
	for i, s := range domain.DefaultTimeSlots {
		slots[i] = types.MustTimeString(s)
	}
	return slots
}

// ContainsSlot проверяет, что время совпадает с одним из сгенерированных слотов
func ContainsSlot(slots []types.TimeString, slot types.TimeString) bool {
	for _, s := range slots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}
