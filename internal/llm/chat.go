// Package llm отправляет вопросы пользователя финансовому ассистенту Gemini.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultTopic    = "investimentos e mercado financeiro"
	fallbackReply   = "Desculpe, não consegui processar sua mensagem."
	maxOutputTokens = 500
)

var (
	// ErrNotConfigured ключ API не задан.
	ErrNotConfigured = errors.New("llm api key is not configured")
	// ErrUnauthorized провайдер отклонил ключ API.
	ErrUnauthorized = errors.New("llm api key rejected")
)

// ChatClient отвечает на сообщение пользователя в заданном контексте.
type ChatClient interface {
	Reply(ctx context.Context, message, topic string) (string, error)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient реализация ChatClient поверх google.golang.org/genai.
type GeminiClient struct {
	models contentGenerator
	model  string
}

// NewGeminiClient создаёт клиента Gemini API. Пустой apiKey даёт ErrNotConfigured.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	const op = "llm.NewGeminiClient"
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &GeminiClient{models: client.Models, model: model}, nil
}

// Reply генерирует ответ ассистента. Отказ провайдера по ключу возвращается как ErrUnauthorized.
func (c *GeminiClient) Reply(ctx context.Context, message, topic string) (string, error) {
	const op = "llm.Reply"
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(message), generationConfig(topic))
	if err != nil {
		if isUnauthorized(err) {
			return "", fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return fallbackReply, nil
	}
	return text, nil
}

func generationConfig(topic string) *genai.GenerateContentConfig {
	if strings.TrimSpace(topic) == "" {
		topic = defaultTopic
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt(topic), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   maxOutputTokens,
	}
}

func systemPrompt(topic string) string {
	return "Você é um assistente financeiro especializado em investimentos, mercado de ações, " +
		"fundos imobiliários, renda fixa e criptomoedas. " +
		"Ajude o usuário a entender o mercado financeiro brasileiro e tomar decisões informadas. " +
		"Seja claro e objetivo e sempre mencione que suas respostas não são recomendações de investimento, " +
		"apenas informações educacionais.\nContexto: " + topic
}

func isUnauthorized(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusUnauthorized
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code == http.StatusUnauthorized
	}
	return false
}
