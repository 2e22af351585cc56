// Package payment принимает уведомления платёжного провайдера.
//
// Одобренный платёж (approved, paid, completed) выдаёт покупателю доступ:
// новая учётная запись с временным паролем или продление подписки
// существующей. Прочие статусы подтверждаются без изменения данных.
package payment

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/metrics"
	"github.com/magabrotheeeer/investment-dashboard/internal/services/provisioning"
)

// SignatureHeader заголовок с общим секретом вебхука.
const SignatureHeader = "X-Webhook-Signature"

var approvedStatuses = map[string]struct{}{
	"approved":  {},
	"paid":      {},
	"completed": {},
}

// Payload тело уведомления о платеже.
type Payload struct {
	PaymentID     string         `json:"payment_id"`
	TransactionID string         `json:"transaction_id"`
	Status        string         `json:"status"`
	CustomerEmail string         `json:"customer_email"`
	CustomerName  string         `json:"customer_name"`
	PlanID        string         `json:"plan_id"`
	ProductID     string         `json:"product_id"`
	Amount        any            `json:"amount,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// Failure ответ вебхука без выдачи доступа.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Response ответ об успешной выдаче доступа. Credentials равен null
// для существующей учётной записи.
type Response struct {
	Success     bool                      `json:"success"`
	Message     string                    `json:"message"`
	UserID      string                    `json:"user_id,omitempty"`
	Plan        string                    `json:"plan,omitempty"`
	RedirectURL string                    `json:"redirect_url,omitempty"`
	Credentials *provisioning.Credentials `json:"credentials"`
}

// Provisioner выдаёт доступ по оплаченному заказу.
type Provisioner interface {
	Provision(ctx context.Context, req provisioning.Request) (*provisioning.Result, error)
}

// Handler обрабатывает POST /api/webhook/payment.
type Handler struct {
	log         *slog.Logger
	provisioner Provisioner
	validate    *validator.Validate
	secret      string
	metrics     *metrics.Metrics
}

// New создаёт Handler. Пустой secret отключает проверку подписи.
func New(log *slog.Logger, provisioner Provisioner, secret string, m *metrics.Metrics) *Handler {
	return &Handler{
		log:         log,
		provisioner: provisioner,
		validate:    validator.New(),
		secret:      secret,
		metrics:     m,
	}
}

// ServeHTTP godoc
// @Summary Вебхук платежа
// @Description Для одобренного платежа создаёт учётную запись или продлевает подписку. Если задан секрет, заголовок X-Webhook-Signature должен совпадать с ним.
// @Tags Webhook
// @Accept  json
// @Produce  json
// @Param X-Webhook-Signature header string false "Общий секрет"
// @Param request body Payload true "Уведомление о платеже"
// @Success 200 {object} Response
// @Failure 400 {object} Failure "Некорректное тело или email"
// @Failure 401 {object} Failure "Неверная подпись"
// @Failure 500 {object} Failure "Ошибка выдачи доступа"
// @Router /api/webhook/payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook.payment"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if !h.verifySignature(r.Header.Get(SignatureHeader)) {
		log.Warn("invalid webhook signature")
		h.metrics.Webhook(metrics.WebhookRejected)
		reply(w, r, http.StatusUnauthorized, Failure{Message: "invalid signature"})
		return
	}

	var p Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		log.Error("failed to decode webhook body", sl.Err(err))
		h.metrics.Webhook(metrics.WebhookInvalid)
		reply(w, r, http.StatusBadRequest, Failure{Message: "invalid request body"})
		return
	}
	log.Info("payment webhook received",
		slog.String("status", p.Status),
		slog.String("payment_id", p.PaymentID),
		slog.String("transaction_id", p.TransactionID),
		slog.Any("amount", p.Amount),
	)

	if _, ok := approvedStatuses[p.Status]; !ok {
		h.metrics.Webhook(metrics.WebhookIgnored)
		reply(w, r, http.StatusOK, Failure{Message: "payment status: " + p.Status})
		return
	}

	if err := h.validate.Var(p.CustomerEmail, "required,email"); err != nil {
		log.Info("invalid customer email", sl.Err(err))
		h.metrics.Webhook(metrics.WebhookInvalid)
		reply(w, r, http.StatusBadRequest, Failure{Message: "customer_email is required and must be valid"})
		return
	}

	res, err := h.provisioner.Provision(r.Context(), provisioning.Request{
		PaymentID:     p.PaymentID,
		TransactionID: p.TransactionID,
		Email:         p.CustomerEmail,
		FullName:      p.CustomerName,
		ProductID:     p.ProductID,
		PlanID:        p.PlanID,
	})
	if err != nil {
		var partial *provisioning.PartialError
		if errors.As(err, &partial) {
			log.Error("provisioning left account without subscription",
				slog.String("user_id", partial.UserID), sl.Email(p.CustomerEmail), sl.Err(err))
		} else {
			log.Error("provisioning failed", sl.Email(p.CustomerEmail), sl.Err(err))
		}
		h.metrics.Webhook(metrics.WebhookFailed)
		reply(w, r, http.StatusInternalServerError, Failure{Message: "failed to process payment"})
		return
	}

	h.metrics.Webhook(metrics.WebhookProvisioned)
	msg := "subscription renewed"
	if res.NewAccount {
		msg = "account created and subscription activated"
	}
	reply(w, r, http.StatusOK, Response{
		Success:     true,
		Message:     msg,
		UserID:      res.UserID,
		Plan:        res.Plan.Name,
		RedirectURL: res.RedirectURL,
		Credentials: res.Credentials,
	})
}

func (h *Handler) verifySignature(signature string) bool {
	if h.secret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(h.secret)) == 1
}

func reply(w http.ResponseWriter, r *http.Request, status int, resp any) {
	render.Status(r, status)
	render.JSON(w, r, resp)
}
