// Package models содержит доменную модель пользователя системы.
// Пользователь создается при первом входе через Google либо при локальной
// регистрации; в обычной работе никогда не удаляется.
package models

import "time"

// Роли пользователей системы.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID               string     `json:"uid"`                 // Уникальный идентификатор пользователя
	Email             string     `json:"email"`               // Электронная почта (уникальная)
	Name              string     `json:"name"`                // Отображаемое имя
	PasswordHash      string     `json:"-"`                   // Хэш пароля, пустой для входа только через Google
	Role              string     `json:"role"`                // Роль пользователя, admin или user
	AutoReportEnabled bool       `json:"auto_report_enabled"` // Автоматическая отправка отчетов по завершении встречи
	CreatedAt         time.Time  `json:"created_at"`
}

// UserWithPlans расширяет пользователя списком его покупок для админ-панели.
type UserWithPlans struct {
	User
	Plans      []*Transaction `json:"plans"`
	LatestPlan *Transaction   `json:"latest_plan"`
}

// RegisterRequest используется для приёма данных локальной регистрации.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest используется для приёма данных локального входа.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateRoleRequest используется для смены роли пользователя администратором.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

// AutoReportRequest используется для переключения автоматических отчетов.
type AutoReportRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
