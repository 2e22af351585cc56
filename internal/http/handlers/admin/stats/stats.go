// Package stats отдаёт показатели административной панели.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/investment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/models"
)

// Store источник статистики.
type Store interface {
	Stats(ctx context.Context) (models.Stats, error)
}

// Handler обрабатывает GET /admin/stats.
type Handler struct {
	log   *slog.Logger
	store Store
}

// New создаёт Handler.
func New(log *slog.Logger, store Store) *Handler {
	return &Handler{
		log:   log,
		store: store,
	}
}

// ServeHTTP godoc
// @Summary Статистика
// @Description Число пользователей, не-администраторов и активных подписок. Только для администраторов.
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	st, err := h.store.Stats(r.Context())
	if err != nil {
		log.Error("failed to load stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	render.JSON(w, r, response.OKWithData(st))
}
