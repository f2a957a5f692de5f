package domain

import "time"

// TableLocation зона зала
type TableLocation string

const (
	LocationIndoor  TableLocation = "Indoor"
	LocationOutdoor TableLocation = "Outdoor"
)

// IsValid проверяет допустимость значения
func (l TableLocation) IsValid() bool {
	return l == LocationIndoor || l == LocationOutdoor
}

// TableStatus статус стола; Blocked столы никогда не предлагаются гостям
type TableStatus string

const (
	TableStatusAvailable TableStatus = "Available"
	TableStatusBlocked   TableStatus = "Blocked"
)

func (s TableStatus) IsValid() bool {
	return s == TableStatusAvailable || s == TableStatusBlocked
}

// Table стол ресторана
type Table struct {
	ID         int64
	Name       string
	Capacity   int
	Location   TableLocation
	Type       string
	Status     TableStatus
	IsJoinable bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable true, если стол может участвовать в подборе
func (t *Table) IsBookable() bool {
	return t.Status != TableStatusBlocked
}

// TablesFilter фильтр каталога столов
type TablesFilter struct {
	Location      *TableLocation
	ExcludeStatus *TableStatus
	LockRows      bool // внутри транзакции читать с FOR UPDATE
}
