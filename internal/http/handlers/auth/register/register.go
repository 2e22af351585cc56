// Package register реализует самостоятельную регистрацию учётной записи.
//
// Если включено требование подписки, зарегистрироваться может только email
// с активной подпиской. Учётная запись создаётся в шлюзе учётных данных,
// затем записывается профиль с именем пользователя. Ошибка записи профиля
// только логируется.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/client"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/password"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
)

// Request входные данные регистрации.
type Request struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName        string `json:"full_name" validate:"required"`
}

// Gateway создаёт учётные записи.
type Gateway interface {
	CreateAccount(ctx context.Context, email, password, fullName string) (string, error)
}

// Profiles записывает профиль пользователя.
type Profiles interface {
	UpsertProfile(ctx context.Context, accountID, email, fullName string) (string, error)
}

// Subscriptions проверяет наличие активной подписки.
type Subscriptions interface {
	HasActiveSubscription(ctx context.Context, email string) bool
}

// Handler обрабатывает POST /login/register.
type Handler struct {
	log                 *slog.Logger
	gateway             Gateway
	profiles            Profiles
	subscriptions       Subscriptions
	validate            *validator.Validate
	requireSubscription bool
}

// New создаёт Handler.
func New(log *slog.Logger, gateway Gateway, profiles Profiles, subscriptions Subscriptions, requireSubscription bool) *Handler {
	return &Handler{
		log:                 log,
		gateway:             gateway,
		profiles:            profiles,
		subscriptions:       subscriptions,
		validate:            validator.New(),
		requireSubscription: requireSubscription,
	}
}

// ServeHTTP godoc
// @Summary Регистрация
// @Description Создаёт учётную запись. При включённом требовании подписки email должен иметь активную подписку.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} response.Response "Учётная запись создана, data.redirect = /login"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Нет активной подписки"
// @Failure 409 {object} response.ErrorResponse "Учётная запись уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	// max=72 считает символы, bcrypt ограничивает байты.
	if len(req.Password) > password.MaxLength {
		log.Info("password exceeds bcrypt limit", slog.Int("bytes", len(req.Password)))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(fmt.Sprintf("field Password must be at most %d bytes", password.MaxLength)))
		return
	}

	if h.requireSubscription && !h.subscriptions.HasActiveSubscription(r.Context(), req.Email) {
		log.Info("registration rejected, no active subscription", sl.Email(req.Email))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("no active subscription for this email"))
		return
	}

	accountID, err := h.gateway.CreateAccount(r.Context(), req.Email, req.Password, req.FullName)
	if errors.Is(err, client.ErrAccountExists) {
		log.Info("account already exists", sl.Email(req.Email))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("account already exists"))
		return
	}
	if err != nil {
		log.Error("failed to create account", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	if _, err := h.profiles.UpsertProfile(r.Context(), accountID, req.Email, req.FullName); err != nil {
		log.Error("failed to save profile", slog.String("account_id", accountID), sl.Err(err))
	}

	log.Info("account registered", sl.Email(req.Email), slog.String("account_id", accountID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"account_id": accountID,
		"redirect":   middlewarectx.LoginPath,
	}))
}
