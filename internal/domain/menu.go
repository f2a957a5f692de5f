package domain

import "time"

// MenuItem позиция меню ресторана
// Имя уникально без учета регистра
type MenuItem struct {
	ID          int64
	Name        string
	Description string
	ImageURL    string
	Price       int64
	Category    string
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuFilter фильтр списка меню
type MenuFilter struct {
	OnlyActive bool
}
