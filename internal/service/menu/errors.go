package menu

import "errors"

var (
	// ErrMenuItemNotFound возвращается, когда позиция меню не найдена
	ErrMenuItemNotFound = errors.New("menu.service: menu item not found")

	// ErrDuplicateName возвращается, если позиция с таким именем уже существует
	ErrDuplicateName = errors.New("menu.service: menu item with this name already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("menu.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("menu.service: internal error")
)
