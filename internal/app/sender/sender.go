// Package sender собирает воркер, отправляющий приветственные письма из очереди.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/investment-dashboard/internal/config"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/investment-dashboard/internal/services/sender"
)

// App воркер уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New подключается к брокеру и объявляет очереди уведомлений.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "sender.New"

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationQueues())
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderservice.New(logger, transport),
		logger:        logger,
	}, nil
}

// Run читает очередь приветственных писем до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, rabbitmq.WelcomeQueue, a.senderService.SendWelcome)
	if err != nil {
		a.logger.Error("failed to start consumer", slog.String("queue", rabbitmq.WelcomeQueue), sl.Err(err))
		return err
	}
	a.logger.Info("consuming queue", slog.String("queue", rabbitmq.WelcomeQueue))

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}

	return nil
}
