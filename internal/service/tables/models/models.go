package models

import (
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
)

// CreateTableRequest запрос на создание стола
// IsJoinable по умолчанию true, Type по умолчанию "Standard", Status по умолчанию "Available"
type CreateTableRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Capacity   int     `json:"capacity" validate:"gt=0"`
	Location   string  `json:"location" validate:"required,oneof=Indoor Outdoor"`
	Type       *string `json:"type,omitempty"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=Available Blocked"`
	IsJoinable *bool   `json:"is_joinable,omitempty"`
}

// UpdateTableRequest частичное обновление стола
type UpdateTableRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Capacity   *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Location   *string `json:"location,omitempty" validate:"omitempty,oneof=Indoor Outdoor"`
	Type       *string `json:"type,omitempty"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=Available Blocked"`
	IsJoinable *bool   `json:"is_joinable,omitempty"`
}

// ListTablesRequest фильтр списка столов
type ListTablesRequest struct {
	Location *string
}

// TableResponse DTO стола
type TableResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Capacity   int       `json:"capacity"`
	Location   string    `json:"location"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	IsJoinable bool      `json:"isJoinable"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToDomainTable конвертирует запрос создания в domain модель с значениями по умолчанию
func (r *CreateTableRequest) ToDomainTable() *domain.Table {
	t := &domain.Table{
		Name:       r.Name,
		Capacity:   r.Capacity,
		Location:   domain.TableLocation(r.Location),
		Type:       domain.DefaultTableType,
		Status:     domain.TableStatusAvailable,
		IsJoinable: true,
	}
	if r.Type != nil && *r.Type != "" {
		t.Type = *r.Type
	}
	if r.Status != nil {
		t.Status = domain.TableStatus(*r.Status)
	}
	if r.IsJoinable != nil {
		t.IsJoinable = *r.IsJoinable
	}
	return t
}

// ApplyTo применяет переданные поля к существующему столу
func (r *UpdateTableRequest) ApplyTo(t *domain.Table) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Capacity != nil {
		t.Capacity = *r.Capacity
	}
	if r.Location != nil {
		t.Location = domain.TableLocation(*r.Location)
	}
	if r.Type != nil {
		t.Type = *r.Type
	}
	if r.Status != nil {
		t.Status = domain.TableStatus(*r.Status)
	}
	if r.IsJoinable != nil {
		t.IsJoinable = *r.IsJoinable
	}
}

// FromDomainTable конвертирует domain модель в DTO
func FromDomainTable(t *domain.Table) *TableResponse {
	if t == nil {
		return nil
	}
	return &TableResponse{
		ID:         t.ID,
		Name:       t.Name,
		Capacity:   t.Capacity,
		Location:   string(t.Location),
		Type:       t.Type,
		Status:     string(t.Status),
		IsJoinable: t.IsJoinable,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// FromDomainTableList конвертирует список столов
func FromDomainTableList(tables []domain.Table) []TableResponse {
	result := make([]TableResponse, 0, len(tables))
	for i := range tables {
		result = append(result, *FromDomainTable(&tables[i]))
	}
	return result
}
