package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("auth.service: invalid credentials")

	// ErrInvalidInput возвращается при пустом логине или пароле
	ErrInvalidInput = errors.New("auth.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth.service: internal error")
)
