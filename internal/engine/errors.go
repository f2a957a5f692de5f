package engine

import "errors"

var (
	// ErrInvalidHours часы работы невозможны: интервал <= 0 или открытие позже закрытия
	ErrInvalidHours = errors.New("engine: invalid restaurant hours configuration")

	// ErrInvalidGuestCount количество гостей должно быть положительным
	ErrInvalidGuestCount = errors.New("engine: guest count must be positive")

	// ErrInternal ошибка хранилища при подборе столов
	ErrInternal = errors.New("engine: internal error")
)
