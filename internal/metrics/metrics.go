// Package metrics объявляет счётчики Prometheus приложения.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Решения шлюза доступа.
const (
	DecisionPublic        = "public"
	DecisionAllowed       = "allowed"
	DecisionNoSession     = "no_session"
	DecisionLoginRedirect = "login_redirect"
	DecisionDenied        = "denied"
)

// Исходы обработки вебхука.
const (
	WebhookProvisioned = "provisioned"
	WebhookIgnored     = "ignored"
	WebhookRejected    = "rejected"
	WebhookInvalid     = "invalid"
	WebhookFailed      = "failed"
)

// Metrics счётчики, зарегистрированные в собственном реестре.
type Metrics struct {
	registry      *prometheus.Registry
	GateDecisions *prometheus.CounterVec
	WebhookEvents *prometheus.CounterVec
	UpstreamCalls *prometheus.CounterVec
}

// New создаёт реестр и регистрирует в нём счётчики и стандартные коллекторы процесса.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		GateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gate_decisions_total",
			Help: "Access gate decisions by outcome.",
		}, []string{"decision"}),
		WebhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_webhook_events_total",
			Help: "Payment webhook deliveries by outcome.",
		}, []string{"outcome"}),
		UpstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_calls_total",
			Help: "Calls to external APIs by upstream and result.",
		}, []string{"upstream", "result"}),
	}
	reg.MustRegister(
		m.GateDecisions,
		m.WebhookEvents,
		m.UpstreamCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler отдаёт метрики реестра.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gate увеличивает счётчик решения шлюза. Допускает nil-приёмник.
func (m *Metrics) Gate(decision string) {
	if m == nil {
		return
	}
	m.GateDecisions.WithLabelValues(decision).Inc()
}

// Webhook увеличивает счётчик исхода вебхука. Допускает nil-приёмник.
func (m *Metrics) Webhook(outcome string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(outcome).Inc()
}

// Upstream учитывает вызов внешнего API. Допускает nil-приёмник.
func (m *Metrics) Upstream(name string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.UpstreamCalls.WithLabelValues(name, result).Inc()
}
