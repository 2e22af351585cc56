// Package provisioning выдаёт доступ после подтверждённой оплаты:
// создаёт учётную запись и профиль для нового покупателя и продлевает подписку.
package provisioning

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/investment-dashboard/internal/lib/password"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/models"
	"github.com/magabrotheeeer/investment-dashboard/internal/plans"
)

// Gateway операции шлюза учётных данных.
type Gateway interface {
	LookupAccount(ctx context.Context, email string) (string, bool, error)
	CreateAccount(ctx context.Context, email, password, fullName string) (string, error)
}

// Store хранилище профилей и подписок.
type Store interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	UpsertSubscription(ctx context.Context, sub models.Subscription) (string, error)
}

// Notifier публикует приветственное письмо.
type Notifier interface {
	PublishWelcome(ctx context.Context, msg models.WelcomeMessage) error
}

// PartialError учётная запись создана, но дальнейшие шаги не выполнены.
// Созданные записи не откатываются.
type PartialError struct {
	UserID string
	Err    error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("account %s provisioned partially: %v", e.UserID, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// Request данные подтверждённого платежа.
type Request struct {
	PaymentID     string
	TransactionID string
	Email         string
	FullName      string
	ProductID     string
	PlanID        string
}

// Credentials временные учётные данные нового покупателя.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	LoginURL string `json:"login_url"`
}

// Result итог выдачи доступа. Credentials равен nil для существующей учётной записи.
type Result struct {
	UserID       string
	Plan         plans.Plan
	Subscription models.Subscription
	Credentials  *Credentials
	RedirectURL  string
	NewAccount   bool
}

// Service выполняет выдачу доступа.
type Service struct {
	gateway     Gateway
	store       Store
	notifier    Notifier
	log         *slog.Logger
	appURL      string
	genPassword func() (string, error)
	now         func() time.Time
}

// New создаёт Service. notifier может быть nil, тогда письма не отправляются.
func New(gateway Gateway, store Store, notifier Notifier, log *slog.Logger, appURL string) *Service {
	return &Service{
		gateway:     gateway,
		store:       store,
		notifier:    notifier,
		log:         log,
		appURL:      strings.TrimRight(appURL, "/"),
		genPassword: password.GenerateTemporary,
		now:         time.Now,
	}
}

// LoginURL адрес страницы входа.
func (s *Service) LoginURL() string {
	return s.appURL + "/login"
}

// Provision выдаёт доступ по подтверждённому платежу.
// Шаги выполняются последовательно без транзакции, повторная оплата
// перезаписывает подписку.
func (s *Service) Provision(ctx context.Context, req Request) (*Result, error) {
	const op = "provisioning.Provision"
	log := s.log.With(slog.String("op", op), sl.Email(req.Email))

	plan := plans.Resolve(req.ProductID, req.PlanID)
	now := s.now()

	userID, found, err := s.gateway.LookupAccount(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: lookup account: %w", op, err)
	}

	var creds *Credentials
	if !found {
		pwd, err := s.genPassword()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		userID, err = s.gateway.CreateAccount(ctx, req.Email, pwd, req.FullName)
		if err != nil {
			return nil, fmt.Errorf("%s: create account: %w", op, err)
		}
		log.Info("account created", slog.String("user_id", userID))

		if _, err := s.store.CreateUser(ctx, models.User{ID: userID, Email: req.Email, FullName: req.FullName}); err != nil {
			return nil, fmt.Errorf("%s: %w", op, &PartialError{UserID: userID, Err: fmt.Errorf("create user: %w", err)})
		}
		creds = &Credentials{Email: req.Email, Password: pwd, LoginURL: s.LoginURL()}
	}

	sub := models.Subscription{
		UserID:    userID,
		Email:     req.Email,
		PaymentID: paymentID(req, now),
		ProductID: firstNonEmpty(req.ProductID, req.PlanID),
		PlanType:  string(plan.Type),
		Status:    models.SubscriptionActive,
		StartDate: now,
		EndDate:   plan.EndDate(now),
	}
	if sub.ID, err = s.store.UpsertSubscription(ctx, sub); err != nil {
		err = fmt.Errorf("upsert subscription: %w", err)
		if creds != nil {
			err = &PartialError{UserID: userID, Err: err}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("subscription activated",
		slog.String("user_id", userID),
		slog.String("plan", string(plan.Type)),
		slog.Time("end_date", sub.EndDate),
	)

	s.notify(ctx, log, req, plan, creds)

	return &Result{
		UserID:       userID,
		Plan:         plan,
		Subscription: sub,
		Credentials:  creds,
		RedirectURL:  s.LoginURL() + "?welcome=true&email=" + url.QueryEscape(req.Email),
		NewAccount:   creds != nil,
	}, nil
}

func (s *Service) notify(ctx context.Context, log *slog.Logger, req Request, plan plans.Plan, creds *Credentials) {
	if s.notifier == nil {
		return
	}
	msg := models.WelcomeMessage{
		Email:    req.Email,
		FullName: req.FullName,
		Plan:     plan.Name,
		LoginURL: s.LoginURL(),
	}
	if creds != nil {
		msg.Password = creds.Password
	}
	if err := s.notifier.PublishWelcome(ctx, msg); err != nil {
		log.Warn("failed to publish welcome notification", sl.Err(err))
	}
}

func paymentID(req Request, now time.Time) string {
	if id := firstNonEmpty(req.PaymentID, req.TransactionID); id != "" {
		return id
	}
	return fmt.Sprintf("webhook_%d", now.UnixMilli())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
