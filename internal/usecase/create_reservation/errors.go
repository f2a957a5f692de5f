package create_reservation

import "errors"

var (
	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом дня
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrNoTablesAvailable возвращается, когда на слот не хватает свободных столов
	ErrNoTablesAvailable = errors.New("create_reservation: not enough capacity for this time slot")

	// ErrConcurrentBooking возвращается при конфликте с параллельным бронированием; запрос можно повторить
	ErrConcurrentBooking = errors.New("create_reservation: concurrent booking conflict")

	// ErrConfiguration возвращается, когда часы работы заданы невозможными значениями
	ErrConfiguration = errors.New("create_reservation: invalid restaurant hours configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
