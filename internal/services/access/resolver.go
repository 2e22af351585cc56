// Package access определяет права пользователя: администратор он или
// имеет действующую подписку. Любая ошибка хранилища трактуется как отказ.
package access

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
)

// Store источник данных о пользователях и подписках.
type Store interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	HasActiveSubscription(ctx context.Context, email string, now time.Time) (bool, error)
}

// Entitlement права пользователя на момент проверки.
type Entitlement struct {
	IsAdmin               bool
	HasActiveSubscription bool
}

// Allowed сообщает, открыт ли пользователю доступ к приложению.
func (e Entitlement) Allowed() bool {
	return e.IsAdmin || e.HasActiveSubscription
}

// Resolver вычисляет Entitlement по email.
type Resolver struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewResolver создаёт Resolver.
func NewResolver(store Store, log *slog.Logger) *Resolver {
	return &Resolver{store: store, log: log, now: time.Now}
}

// IsAdmin возвращает true только для существующего профиля с флагом администратора.
func (r *Resolver) IsAdmin(ctx context.Context, email string) bool {
	isAdmin, err := r.store.IsAdmin(ctx, email)
	if err != nil {
		r.log.Debug("admin lookup failed, treating as non-admin", sl.Email(email), sl.Err(err))
		return false
	}
	return isAdmin
}

// HasActiveSubscription проверяет наличие активной неистёкшей подписки.
func (r *Resolver) HasActiveSubscription(ctx context.Context, email string) bool {
	ok, err := r.store.HasActiveSubscription(ctx, email, r.now())
	if err != nil {
		r.log.Error("subscription lookup failed, treating as absent", sl.Email(email), sl.Err(err))
		return false
	}
	return ok
}

// Resolve возвращает права. Подписка администратора не проверяется.
func (r *Resolver) Resolve(ctx context.Context, email string) Entitlement {
	if r.IsAdmin(ctx, email) {
		return Entitlement{IsAdmin: true}
	}
	return Entitlement{HasActiveSubscription: r.HasActiveSubscription(ctx, email)}
}
