package models

import (
	"strings"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
)

// CreateMenuItemRequest запрос на создание позиции меню
// IsActive по умолчанию true
type CreateMenuItemRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description" validate:"max=2000"`
	ImageURL    string `json:"image_url" validate:"max=500"`
	Price       int64  `json:"price" validate:"gte=0"`
	Category    string `json:"category" validate:"max=100"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// UpdateMenuItemRequest частичное обновление позиции меню
type UpdateMenuItemRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,max=500"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=100"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// MenuItemResponse DTO позиции меню
type MenuItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToDomainMenuItem конвертирует запрос создания в domain модель
func (r *CreateMenuItemRequest) ToDomainMenuItem() *domain.MenuItem {
	item := &domain.MenuItem{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Price:       r.Price,
		Category:    r.Category,
		IsActive:    true,
	}
	if r.IsActive != nil {
		item.IsActive = *r.IsActive
	}
	return item
}

// ApplyTo применяет переданные поля к существующей позиции
func (r *UpdateMenuItemRequest) ApplyTo(item *domain.MenuItem) {
	if r.Name != nil {
		item.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		item.Description = *r.Description
	}
	if r.ImageURL != nil {
		item.ImageURL = *r.ImageURL
	}
	if r.Price != nil {
		item.Price = *r.Price
	}
	if r.Category != nil {
		item.Category = *r.Category
	}
	if r.IsActive != nil {
		item.IsActive = *r.IsActive
	}
}

// FromDomainMenuItem конвертирует domain модель в DTO
func FromDomainMenuItem(item *domain.MenuItem) *MenuItemResponse {
	if item == nil {
		return nil
	}
	return &MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Price:       item.Price,
		Category:    item.Category,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// FromDomainMenuList конвертирует список позиций
func FromDomainMenuList(items []domain.MenuItem) []MenuItemResponse {
	result := make([]MenuItemResponse, 0, len(items))
	for i := range items {
		result = append(result, *FromDomainMenuItem(&items[i]))
	}
	return result
}
