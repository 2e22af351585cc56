// Package chart отдаёт график индекса S&P 500 с начала года.
package chart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/investment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/metrics"
)

// MarketData источник графика индекса.
type MarketData interface {
	MarketChart(ctx context.Context) (json.RawMessage, error)
}

// Handler обрабатывает GET /api/market.
type Handler struct {
	log     *slog.Logger
	market  MarketData
	metrics *metrics.Metrics
}

// New создаёт Handler.
func New(log *slog.Logger, market MarketData, m *metrics.Metrics) *Handler {
	return &Handler{
		log:     log,
		market:  market,
		metrics: m,
	}
}

// ServeHTTP godoc
// @Summary График рынка
// @Description Дневной график S&P 500 с начала года от внешнего API.
// @Tags Market
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Ошибка внешнего API"
// @Router /api/market [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.market.chart"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	data, err := h.market.MarketChart(r.Context())
	h.metrics.Upstream("market_chart", err)
	if err != nil {
		log.Error("failed to fetch market data", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch market data"))
		return
	}
	render.JSON(w, r, response.OKWithData(data))
}
