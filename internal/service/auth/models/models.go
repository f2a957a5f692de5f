package models

import "time"

// Роли персонала
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// StaffAccount учетная запись персонала из конфигурации
type StaffAccount struct {
	Username     string
	PasswordHash string
	Role         string
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse выданный токен
type LoginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
