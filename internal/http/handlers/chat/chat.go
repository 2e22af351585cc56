// Package chat проксирует вопросы пользователя к финансовому ассистенту.
//
// Если ключ модели не настроен или отклонён провайдером, пользователь
// получает 200 с подсказкой, как исправить настройку.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/investment-dashboard/internal/http/response"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/llm"
	"github.com/magabrotheeeer/investment-dashboard/internal/metrics"
)

const (
	upstreamName = "llm"

	notConfiguredReply = "Para usar o Chat IA, configure a variável de ambiente LLM_API_KEY com a chave da API do modelo."
	invalidKeyReply    = "A chave da API do modelo está inválida ou expirada. Atualize a variável LLM_API_KEY."
)

// Request сообщение пользователя и необязательная тема разговора.
type Request struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// Handler обрабатывает POST /api/chat.
type Handler struct {
	log     *slog.Logger
	client  llm.ChatClient
	metrics *metrics.Metrics
}

// New создаёт Handler. client равен nil, если ключ модели не настроен.
func New(log *slog.Logger, client llm.ChatClient, m *metrics.Metrics) *Handler {
	return &Handler{
		log:     log,
		client:  client,
		metrics: m,
	}
}

// ServeHTTP godoc
// @Summary Чат с финансовым ассистентом
// @Description Отправляет сообщение модели. Отсутствующий или отклонённый ключ возвращает 200 с подсказкой.
// @Tags Tools
// @Accept  json
// @Produce  json
// @Param request body Request true "Сообщение и контекст"
// @Success 200 {object} response.Response "data.response содержит ответ"
// @Failure 400 {object} response.ErrorResponse "Пустое сообщение"
// @Failure 500 {object} response.ErrorResponse "Ошибка провайдера"
// @Router /api/chat [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat"

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
	if strings.TrimSpace(req.Message) == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("message is required"))
		return
	}

	if h.client == nil {
		log.Warn("chat requested but llm is not configured")
		render.JSON(w, r, reply(notConfiguredReply))
		return
	}

	answer, err := h.ask(r.Context(), req)
	if errors.Is(err, llm.ErrUnauthorized) {
		log.Error("llm rejected api key", sl.Err(err))
		render.JSON(w, r, reply(invalidKeyReply))
		return
	}
	if err != nil {
		log.Error("llm request failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to process message"))
		return
	}

	render.JSON(w, r, reply(answer))
}

func (h *Handler) ask(ctx context.Context, req Request) (string, error) {
	answer, err := h.client.Reply(ctx, req.Message, req.Context)
	h.metrics.Upstream(upstreamName, err)
	return answer, err
}

func reply(text string) response.Response {
	return response.OKWithData(map[string]string{"response": text})
}
