// Package health отдаёт состояние сервиса для проб оркестратора.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/investment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
)

// Checker проверяет готовность зависимости.
type Checker interface {
	CheckDatabaseReady(ctx context.Context) error
}

// Handler обрабатывает GET /health.
type Handler struct {
	log     *slog.Logger
	checker Checker
}

// New создаёт Handler. checker может быть nil.
func New(log *slog.Logger, checker Checker) *Handler {
	return &Handler{
		log:     log,
		checker: checker,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	if h.checker != nil {
		if err := h.checker.CheckDatabaseReady(r.Context()); err != nil {
			h.log.Error("database is not ready", slog.String("op", op), sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("database is not ready"))
			return
		}
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
