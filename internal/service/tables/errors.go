package tables

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("tables.service: table not found")

	// ErrTableHasActiveReservations стол нельзя удалить, пока на нем есть активные бронирования
	ErrTableHasActiveReservations = errors.New("tables.service: table has active reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("tables.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("tables.service: internal error")
)
