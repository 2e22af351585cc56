// Package portfolio реализует HTTP-обработчик оценки портфеля.
package portfolio

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/investment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/portfolio"
)

// Request список позиций портфеля.
type Request struct {
	Holdings []portfolio.Holding `json:"holdings" validate:"required,min=1,dive"`
}

// Handler обрабатывает POST /api/portfolio/summary.
type Handler struct {
	log      *slog.Logger
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log:      log,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сводка портфеля
// @Description Оценивает позиции по справочным ценам и считает дивидендную доходность.
// @Tags Tools
// @Accept  json
// @Produce  json
// @Param request body Request true "Позиции портфеля"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Неизвестный тикер или некорректное количество"
// @Router /api/portfolio/summary [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.portfolio"

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
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	summary, err := portfolio.Summarize(req.Holdings)
	if errors.Is(err, portfolio.ErrUnknownTicker) || errors.Is(err, portfolio.ErrInvalidQuantity) {
		log.Info("summary rejected", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if err != nil {
		log.Error("summary failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(summary))
}
