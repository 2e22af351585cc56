package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/investment-dashboard/internal/models"
)

// CreateUser создаёт профиль пользователя и возвращает его ID.
// ID профиля совпадает с ID учётной записи, если он передан в user.ID.
// Если профиль с таким email уже есть, обновляется только непустой full_name.
// Профиль всегда создаётся без прав администратора, флаг is_admin
// существующей строки не меняется.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, email, is_admin, full_name)
			  VALUES ($1, $2, FALSE, $3)
			  ON CONFLICT (email) DO UPDATE
			  SET full_name = CASE WHEN EXCLUDED.full_name <> '' THEN EXCLUDED.full_name ELSE users.full_name END
			  RETURNING id;`
	id := user.ID
	if id == "" {
		id = uuid.NewString()
	}
	if err := s.DB.QueryRowContext(ctx, query,
		id, user.Email, user.FullName).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpsertProfile записывает имя пользователя, не затрагивая is_admin.
func (s *Storage) UpsertProfile(ctx context.Context, accountID, email, fullName string) (string, error) {
	const op = "storage.UpsertProfile"
	id, err := s.CreateUser(ctx, models.User{ID: accountID, Email: email, FullName: fullName})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetUserByEmail возвращает профиль по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT id, email, is_admin, full_name, created_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.IsAdmin, &u.FullName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// IsAdmin возвращает флаг администратора. Отсутствие профиля даёт ErrUserNotFound.
func (s *Storage) IsAdmin(ctx context.Context, email string) (bool, error) {
	const op = "storage.IsAdmin"
	var isAdmin bool
	err := s.DB.QueryRowContext(ctx, `SELECT is_admin FROM users WHERE email = $1`, email).Scan(&isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return isAdmin, nil
}

// Stats считает показатели административной панели.
func (s *Storage) Stats(ctx context.Context) (models.Stats, error) {
	const op = "storage.Stats"
	var st models.Stats
	query := `SELECT
				  (SELECT COUNT(*) FROM users),
				  (SELECT COUNT(*) FROM users WHERE NOT is_admin),
				  (SELECT COUNT(*) FROM subscriptions WHERE status = 'active' AND end_date >= now())`
	if err := s.DB.QueryRowContext(ctx, query).
		Scan(&st.TotalUsers, &st.NonAdminUsers, &st.ActiveSubscriptions); err != nil {
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}
