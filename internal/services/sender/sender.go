// Package sender отправляет письма подписчикам по сообщениям из брокера.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/smtp"
	"github.com/magabrotheeeer/investment-dashboard/internal/models"
)

// Service формирует и отправляет письма.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создаёт Service.
func New(log *slog.Logger, transport smtp.TransportInterface) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendWelcome разбирает models.WelcomeMessage и отправляет приветственное письмо.
// Для новой учётной записи письмо содержит временный пароль.
func (s *Service) SendWelcome(body []byte) error {
	const op = "sender.SendWelcome"
	var msg models.WelcomeMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	if msg.Email == "" {
		return fmt.Errorf("%s: empty recipient", op)
	}

	if err := s.sendEmail([]string{msg.Email}, "Bem-vindo ao Dashboard de Investimentos", welcomeBody(msg)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func welcomeBody(msg models.WelcomeMessage) string {
	var b strings.Builder
	name := msg.FullName
	if name == "" {
		name = msg.Email
	}
	fmt.Fprintf(&b, "Olá, %s!\r\n\r\n", name)
	fmt.Fprintf(&b, "Seu pagamento do %s foi confirmado.\r\n", msg.Plan)
	if msg.Password != "" {
		b.WriteString("\r\nSeus dados de acesso:\r\n")
		fmt.Fprintf(&b, "E-mail: %s\r\n", msg.Email)
		fmt.Fprintf(&b, "Senha temporária: %s\r\n", msg.Password)
	}
	fmt.Fprintf(&b, "\r\nAcesse: %s\r\n", msg.LoginURL)
	return b.String()
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug("smtp client close", sl.Err(err))
		}
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", sl.Email(addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
