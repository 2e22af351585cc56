// Package planner реализует HTTP-обработчик расчёта срока достижения финансовой цели.
package planner

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
	"github.com/magabrotheeeer/investment-dashboard/internal/planner"
)

// Handler обрабатывает POST /api/planner.
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
// @Summary Финансовый планировщик
// @Description Считает, за сколько месяцев ежемесячные взносы под 1,5% в месяц достигнут цели.
// @Tags Tools
// @Accept  json
// @Produce  json
// @Param request body planner.Input true "Доход, расходы, взнос и цель"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Некорректные значения"
// @Router /api/planner [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.planner"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var in planner.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(in); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := planner.Calculate(in)
	if errors.Is(err, planner.ErrContributionExceedsIncome) || errors.Is(err, planner.ErrInvalidInput) {
		log.Info("calculation rejected", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if err != nil {
		log.Error("calculation failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(res))
}
