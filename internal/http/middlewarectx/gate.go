// Package middlewarectx содержит HTTP middleware дашборда.
//
// AccessGate пропускает запрос только при действующей сессии и праве доступа:
// администратор или активная неистёкшая подписка. Без сессии запрос
// перенаправляется на /login, без права доступа сессия отзывается.
// Публичны только пути с префиксами /login и /api/webhook.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/client"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/metrics"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// Email ключ email пользователя в контексте
	Email Key = "email"
	// IsAdmin ключ признака администратора в контексте
	IsAdmin Key = "is_admin"
)

const (
	// LoginPath страница входа.
	LoginPath = "/login"
	// HomePath главная страница.
	HomePath = "/"
)

var publicPrefixes = []string{"/login", "/api/webhook"}

// SessionService проверяет и отзывает сессии через шлюз учётных данных.
type SessionService interface {
	ValidateSession(ctx context.Context, token string) (*client.Session, error)
	RevokeSession(ctx context.Context, token string) error
}

// EntitlementResolver определяет права пользователя.
type EntitlementResolver interface {
	IsAdmin(ctx context.Context, email string) bool
	HasActiveSubscription(ctx context.Context, email string) bool
}

// IsPublic сообщает, доступен ли path без сессии.
func IsPublic(path string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AccessGate возвращает middleware, которое проверяет сессию и право доступа
// для каждого запроса. Разрешённые запросы получают в контексте Email и IsAdmin.
func AccessGate(log *slog.Logger, sessions SessionService, resolver EntitlementResolver, cookieName string, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AccessGate"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			path := r.URL.Path
			public := IsPublic(path)
			token, session := resolveSession(r, log, sessions, cookieName)

			if session == nil {
				if public {
					m.Gate(metrics.DecisionPublic)
					next.ServeHTTP(w, r)
					return
				}
				m.Gate(metrics.DecisionNoSession)
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			if path == LoginPath {
				m.Gate(metrics.DecisionLoginRedirect)
				http.Redirect(w, r, HomePath, http.StatusFound)
				return
			}
			if public {
				m.Gate(metrics.DecisionPublic)
				next.ServeHTTP(w, r)
				return
			}

			if resolver.IsAdmin(r.Context(), session.Email) {
				m.Gate(metrics.DecisionAllowed)
				next.ServeHTTP(w, r.WithContext(withUser(r.Context(), session.Email, true)))
				return
			}
			if resolver.HasActiveSubscription(r.Context(), session.Email) {
				m.Gate(metrics.DecisionAllowed)
				next.ServeHTTP(w, r.WithContext(withUser(r.Context(), session.Email, false)))
				return
			}

			log.Info("access denied, no active subscription", sl.Email(session.Email))
			if err := sessions.RevokeSession(r.Context(), token); err != nil {
				log.Error("failed to revoke session", sl.Err(err))
			}
			ClearSessionCookie(w, cookieName)
			m.Gate(metrics.DecisionDenied)
			http.Redirect(w, r, LoginPath, http.StatusFound)
		})
	}
}

func resolveSession(r *http.Request, log *slog.Logger, sessions SessionService, cookieName string) (string, *client.Session) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return "", nil
	}
	session, err := sessions.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, client.ErrInvalidSession) {
			log.Error("failed to validate session", sl.Err(err))
		}
		return "", nil
	}
	return cookie.Value, session
}

func withUser(ctx context.Context, email string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, Email, email)
	return context.WithValue(ctx, IsAdmin, isAdmin)
}

// EmailFromContext возвращает email пользователя, пропущенного AccessGate.
func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(Email).(string)
	return email
}

// IsAdminFromContext возвращает признак администратора из контекста.
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(IsAdmin).(bool)
	return isAdmin
}
