// Package dashboard собирает HTTP-приложение дашборда: хранилище, кеш,
// клиент шлюза учётных данных, внешние API и маршруты.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/investment-dashboard/internal/cache"
	"github.com/magabrotheeeer/investment-dashboard/internal/config"
	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/client"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/handlers/health"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/llm"
	"github.com/magabrotheeeer/investment-dashboard/internal/marketdata"
	"github.com/magabrotheeeer/investment-dashboard/internal/metrics"
	"github.com/magabrotheeeer/investment-dashboard/internal/migrations"
	"github.com/magabrotheeeer/investment-dashboard/internal/services/access"
	"github.com/magabrotheeeer/investment-dashboard/internal/services/provisioning"
	"github.com/magabrotheeeer/investment-dashboard/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App основное приложение дашборда.
type App struct {
	server        *http.Server
	metricsServer *http.Server
	logger        *slog.Logger
	db            *repository.Storage
	cache         *cache.Cache
	authClient    *client.AuthClient
	mqConn        *amqp.Connection
}

// New подключает зависимости и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "dashboard.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authClient, err := client.NewAuthClient(cfg.GRPCAuthAddress)
	if err != nil {
		db.Close()
		cacheRedis.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := metrics.New()

	// Без брокера доступ выдаётся, но приветственные письма не уходят.
	var notifier provisioning.Notifier
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq is unavailable, welcome emails are disabled", sl.Err(err))
	} else {
		ch, err := rabbitmq.SetupChannel(mqConn, rabbitmq.NotificationQueues())
		if err != nil {
			logger.Warn("failed to set up rabbitmq channel, welcome emails are disabled", sl.Err(err))
			mqConn.Close()
			mqConn = nil
		} else {
			notifier = rabbitmq.NewPublisher(ch)
		}
	}

	var chatClient llm.ChatClient
	gemini, err := llm.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Warn("llm api key is not set, chat answers with a configuration hint")
	case err != nil:
		logger.Error("failed to create llm client", sl.Err(err))
	default:
		chatClient = gemini
	}

	deps := Deps{
		Config:      cfg,
		Logger:      logger,
		Metrics:     m,
		Gateway:     authClient,
		Store:       db,
		Resolver:    access.NewResolver(db, logger),
		Provisioner: provisioning.New(authClient, db, notifier, logger, cfg.AppURL),
		Market:      marketdata.NewClient(cfg.MarketData, cfg.RateLimit, cacheRedis, logger),
		Chat:        chatClient,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, deps)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	metricsRouter := chi.NewRouter()
	metricsRouter.Handle("/metrics", m.Handler())
	metricsRouter.Get("/health", health.New(logger, db).ServeHTTP)
	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddress,
		Handler:           metricsRouter,
		ReadHeaderTimeout: cfg.TimeoutHTTP,
	}

	return &App{
		server:        srv,
		metricsServer: metricsSrv,
		logger:        logger,
		db:            db,
		cache:         cacheRedis,
		authClient:    authClient,
		mqConn:        mqConn,
	}, nil
}

// Run запускает HTTP-серверы и останавливает их при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	serve := func(srv *http.Server, name string) {
		a.logger.Info("HTTP server starting on", slog.String("server", name), slog.String("address", srv.Addr))
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}
	go serve(a.server, "app")
	go serve(a.metricsServer, "metrics")

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down HTTP server gracefully")
	if err := a.server.Shutdown(timeoutCtx); err != nil && runErr == nil {
		runErr = err
	}
	if err := a.metricsServer.Shutdown(timeoutCtx); err != nil {
		a.logger.Error("failed to stop metrics server", sl.Err(err))
	}
	a.close()
	return runErr
}

func (a *App) close() {
	if err := a.authClient.Close(); err != nil {
		a.logger.Error("failed to close auth client", sl.Err(err))
	}
	if a.mqConn != nil {
		if err := a.mqConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
