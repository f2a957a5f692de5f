package settings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном значении настройки
	ErrInvalidInput = errors.New("settings.service: invalid input data")

	// ErrInvalidHours возвращается, если часы работы невозможны (open > close, отрицательный интервал)
	ErrInvalidHours = errors.New("settings.service: invalid restaurant hours")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings.service: internal error")
)
