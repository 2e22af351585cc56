// Package models содержит доменные структуры дашборда: профиль пользователя,
// учётную запись, подписку и сообщения для брокера.
package models

import "time"

// User профиль пользователя дашборда.
type User struct {
	ID        string    // Уникальный идентификатор
	Email     string    // Электронная почта, уникальна
	FullName  string    // Имя для отображения
	IsAdmin   bool      // Флаг администратора
	CreatedAt time.Time // Дата создания
}

// Account учётная запись шлюза аутентификации.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}

// Stats агрегированные показатели для административной панели.
type Stats struct {
	TotalUsers          int `json:"total_users"`
	NonAdminUsers       int `json:"non_admin_users"`
	ActiveSubscriptions int `json:"active_subscriptions"`
}
