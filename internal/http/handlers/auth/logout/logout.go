// Package logout завершает сессию пользователя.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/investment-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
)

// Revoker отзывает токен сессии.
type Revoker interface {
	RevokeSession(ctx context.Context, token string) error
}

// Handler обрабатывает POST /logout.
type Handler struct {
	log        *slog.Logger
	sessions   Revoker
	cookieName string
}

// New создаёт Handler.
func New(log *slog.Logger, sessions Revoker, cookieName string) *Handler {
	return &Handler{
		log:        log,
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Отзывает сессию, удаляет cookie и перенаправляет на /login.
// @Tags Auth
// @Success 302 "Перенаправление на /login"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.RevokeSession(r.Context(), cookie.Value); err != nil {
			log.Error("failed to revoke session", sl.Err(err))
		}
	}
	middlewarectx.ClearSessionCookie(w, h.cookieName)
	log.Info("logout", sl.Email(middlewarectx.EmailFromContext(r.Context())))
	http.Redirect(w, r, middlewarectx.LoginPath, http.StatusFound)
}
