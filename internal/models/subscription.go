package models

import "time"

// Статусы подписки.
const (
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// Subscription оплаченная подписка пользователя.
// Подписка действует, пока Status равен active и EndDate не в прошлом.
type Subscription struct {
	ID        string
	UserID    string
	Email     string
	PaymentID string
	ProductID string
	PlanType  string
	Status    string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

