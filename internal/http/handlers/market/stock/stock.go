// Package stock отдаёт историю котировок акции.
package stock

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/investment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/marketdata"
	"github.com/magabrotheeeer/investment-dashboard/internal/metrics"
)

// Request тикер и период истории.
type Request struct {
	Stock  string `json:"stock" example:"PETR4.SA"`
	Period string `json:"period,omitempty" example:"1mo"`
}

// MarketData источник истории котировок.
type MarketData interface {
	StockHistory(ctx context.Context, stock, period string) (json.RawMessage, error)
}

// Handler обрабатывает POST /api/stock.
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
// @Summary История котировок
// @Description История цен акции за период, по умолчанию 1mo.
// @Tags Market
// @Accept  json
// @Produce  json
// @Param request body Request true "Тикер и период"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Не указан тикер"
// @Failure 500 {object} response.ErrorResponse "Ошибка внешнего API"
// @Router /api/stock [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.market.stock"

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
	if strings.TrimSpace(req.Stock) == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("stock symbol is required"))
		return
	}
	if req.Period == "" {
		req.Period = marketdata.DefaultPeriod
	}

	data, err := h.market.StockHistory(r.Context(), req.Stock, req.Period)
	h.metrics.Upstream("stock_history", err)
	if err != nil {
		log.Error("failed to fetch stock data", slog.String("stock", req.Stock), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch stock data"))
		return
	}
	render.JSON(w, r, response.OKWithData(data))
}
