package dashboard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// Регистрирует описание API для /docs.
	_ "github.com/magabrotheeeer/investment-dashboard/docs"
	"github.com/magabrotheeeer/investment-dashboard/internal/config"
	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/client"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/admin/stats"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/chat"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/landing"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/market/chart"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/market/stock"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/planner"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/portfolio"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/webhook/payment"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/webhook/status"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/investment-dashboard/internal/llm"
	"github.com/magabrotheeeer/investment-dashboard/internal/marketdata"
	"github.com/magabrotheeeer/investment-dashboard/internal/metrics"
	"github.com/magabrotheeeer/investment-dashboard/internal/services/access"
	"github.com/magabrotheeeer/investment-dashboard/internal/services/provisioning"
	"github.com/magabrotheeeer/investment-dashboard/internal/storage/repository"
)

// Deps зависимости обработчиков. Chat может быть nil, если модель не настроена.
type Deps struct {
	Config      *config.Config
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Gateway     *client.AuthClient
	Store       *repository.Storage
	Resolver    *access.Resolver
	Provisioner *provisioning.Service
	Market      *marketdata.Client
	Chat        llm.ChatClient
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	cfg, logger := d.Config, d.Logger

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.AccessGate(logger, d.Gateway, d.Resolver, cfg.Session.CookieName, d.Metrics),
	)

	// Открытые конечные точки
	r.Post("/login", login.New(logger, d.Gateway, d.Resolver, cfg.Session).ServeHTTP)
	r.Post("/login/register", register.New(logger, d.Gateway, d.Store, d.Resolver, cfg.RequireSubscription).ServeHTTP)

	// Защищённые конечные точки, доступ проверяет AccessGate
	r.Post("/logout", logout.New(logger, d.Gateway, cfg.Session.CookieName).ServeHTTP)
	r.Get("/", landing.New(logger).ServeHTTP)
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		// Вебхук открыт, подпись проверяет обработчик
		r.Post("/webhook/payment", payment.New(logger, d.Provisioner, cfg.Webhook.Secret, d.Metrics).ServeHTTP)
		r.Get("/webhook/payment", status.New(logger, cfg.AppURL).ServeHTTP)

		r.Post("/planner", planner.New(logger).ServeHTTP)
		r.Post("/portfolio/summary", portfolio.New(logger).ServeHTTP)
		r.Get("/market", chart.New(logger, d.Market, d.Metrics).ServeHTTP)
		r.Post("/stock", stock.New(logger, d.Market, d.Metrics).ServeHTTP)

		r.Group(func(r chi.Router) {
			limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
			r.Post("/chat", chat.New(logger, d.Chat, d.Metrics).ServeHTTP)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middlewarectx.RequireAdmin(logger))
		r.Get("/stats", stats.New(logger, d.Store).ServeHTTP)
	})
}
