// Package login реализует HTTP-обработчик входа в дашборд.
//
// Учётные данные проверяет шлюз учётных данных. Сессия выдаётся только
// администратору или пользователю с активной подпиской, иначе только что
// выданный токен отзывается и возвращается 403.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/investment-dashboard/internal/config"
	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/client"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/services/access"
)

// Request входные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Gateway операции шлюза учётных данных, нужные для входа.
type Gateway interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
	RevokeSession(ctx context.Context, token string) error
}

// Resolver определяет права пользователя.
type Resolver interface {
	Resolve(ctx context.Context, email string) access.Entitlement
}

// Handler обрабатывает POST /login.
type Handler struct {
	log      *slog.Logger
	gateway  Gateway
	resolver Resolver
	validate *validator.Validate
	session  config.Session
}

// New создаёт Handler.
func New(log *slog.Logger, gateway Gateway, resolver Resolver, session config.Session) *Handler {
	return &Handler{
		log:      log,
		gateway:  gateway,
		resolver: resolver,
		validate: validator.New(),
		session:  session,
	}
}

// ServeHTTP godoc
// @Summary Вход в дашборд
// @Description Проверяет email и пароль, требует права администратора или активную подписку и устанавливает cookie сессии.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешный вход, data.redirect = /"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 403 {object} response.ErrorResponse "Подписка истекла или не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.gateway.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, client.ErrInvalidCredentials) {
		log.Info("invalid credentials", sl.Email(req.Email))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid email or password"))
		return
	}
	if err != nil {
		log.Error("authentication failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	ent := h.resolver.Resolve(r.Context(), req.Email)
	if !ent.Allowed() {
		log.Info("login rejected, no active subscription", sl.Email(req.Email))
		if err := h.gateway.RevokeSession(r.Context(), token); err != nil {
			log.Error("failed to revoke session", sl.Err(err))
		}
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("subscription expired or not found"))
		return
	}

	middlewarectx.SetSessionCookie(w, h.session.CookieName, token, h.session.TokenTTL, h.session.CookieSecure)
	log.Info("login success", sl.Email(req.Email), slog.Bool("is_admin", ent.IsAdmin))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"email":    req.Email,
		"is_admin": ent.IsAdmin,
		"redirect": middlewarectx.HomePath,
	}))
}
