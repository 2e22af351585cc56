// Package status отдаёт состояние вебхука и каталог тарифов.
package status

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/investment-dashboard/internal/plans"
)

// Response состояние вебхука.
type Response struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Plans   []plans.Plan `json:"plans"`
	AppURL  string       `json:"app_url"`
}

// Handler обрабатывает GET /api/webhook/payment.
type Handler struct {
	log    *slog.Logger
	appURL string
}

// New создаёт Handler.
func New(log *slog.Logger, appURL string) *Handler {
	return &Handler{
		log:    log,
		appURL: appURL,
	}
}

// ServeHTTP godoc
// @Summary Состояние вебхука
// @Description Проверка доступности вебхука и список тарифов.
// @Tags Webhook
// @Produce  json
// @Success 200 {object} Response
// @Router /api/webhook/payment [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook.status"

	h.log.Debug("webhook status requested",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("remote_addr", r.RemoteAddr),
	)

	render.JSON(w, r, Response{
		Status:  "active",
		Message: "payment webhook is ready",
		Plans:   plans.All(),
		AppURL:  h.appURL,
	})
}
