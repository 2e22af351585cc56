// Package landing отдаёт данные главной страницы дашборда.
package landing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/investment-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/response"
)

// Handler обрабатывает GET /.
type Handler struct {
	log *slog.Logger
}

// New создаёт Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Главная страница
// @Description Возвращает email и признак администратора текущего пользователя.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"email":    middlewarectx.EmailFromContext(r.Context()),
		"is_admin": middlewarectx.IsAdminFromContext(r.Context()),
	}))
}
