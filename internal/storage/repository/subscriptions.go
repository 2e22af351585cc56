package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/investment-dashboard/internal/models"
)

// UpsertSubscription создаёт или перезаписывает подписку по email.
// При повторной оплате сохраняется последняя запись, user_id не затирается пустым.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "storage.UpsertSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var userID sql.NullString
	if sub.UserID != "" {
		userID = sql.NullString{String: sub.UserID, Valid: true}
	}

	query := `INSERT INTO subscriptions
				  (id, user_id, email, payment_id, product_id, plan_type, status, start_date, end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (email) DO UPDATE SET
				  user_id    = COALESCE(EXCLUDED.user_id, subscriptions.user_id),
				  payment_id = EXCLUDED.payment_id,
				  product_id = EXCLUDED.product_id,
				  plan_type  = EXCLUDED.plan_type,
				  status     = EXCLUDED.status,
				  start_date = EXCLUDED.start_date,
				  end_date   = EXCLUDED.end_date,
				  updated_at = now()
			  RETURNING id;`
	var id string
	if err := s.DB.QueryRowContext(ctx, query,
		uuid.NewString(), userID, sub.Email, sub.PaymentID, sub.ProductID,
		sub.PlanType, sub.Status, sub.StartDate, sub.EndDate).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// HasActiveSubscription сообщает, есть ли у email активная неистёкшая подписка на момент now.
func (s *Storage) HasActiveSubscription(ctx context.Context, email string, now time.Time) (bool, error) {
	const op = "storage.HasActiveSubscription"
	var one int
	err := s.DB.QueryRowContext(ctx, `SELECT 1 FROM subscriptions
			  WHERE email = $1 AND status = 'active' AND end_date >= $2
			  LIMIT 1`, email, now).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// GetSubscriptionByEmail возвращает подписку по email.
func (s *Storage) GetSubscriptionByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByEmail"
	query := `SELECT id, COALESCE(user_id::text, ''), email, payment_id, product_id, plan_type,
				  status, start_date, end_date, created_at, updated_at
			  FROM subscriptions
			  WHERE email = $1`
	sub := &models.Subscription{}
	err := s.DB.QueryRowContext(ctx, query, email).Scan(
		&sub.ID, &sub.UserID, &sub.Email, &sub.PaymentID, &sub.ProductID, &sub.PlanType,
		&sub.Status, &sub.StartDate, &sub.EndDate, &sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}
