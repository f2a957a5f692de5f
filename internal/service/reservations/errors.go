package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations.service: reservation not found")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("reservations.service: invalid reservation status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations.service: invalid input data")

	// ErrTableOccupied возвращается, если стол занят другим бронированием в этом слоте или заблокирован
	ErrTableOccupied = errors.New("reservations.service: table is not available for this slot")

	// ErrTableNotFound возвращается, если указанного стола нет в каталоге
	ErrTableNotFound = errors.New("reservations.service: table not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations.service: internal error")
)
