package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/investment-dashboard/internal/models"
)

// CreateAccount сохраняет учётную запись с готовым хешем пароля.
// Дубликат email возвращает ErrAccountExists.
func (s *Storage) CreateAccount(ctx context.Context, email, passwordHash, fullName string) (string, error) {
	const op = "storage.CreateAccount"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO accounts (id, email, password_hash, full_name)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	var id string
	err := s.DB.QueryRowContext(ctx, query, uuid.NewString(), email, passwordHash, fullName).Scan(&id)
	if isUniqueViolation(err) {
		return "", fmt.Errorf("%s: %w", op, ErrAccountExists)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetAccountByEmail возвращает учётную запись по email.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.GetAccountByEmail"

	query := `SELECT id, email, password_hash, full_name, created_at
			  FROM accounts
			  WHERE email = $1`
	a := &models.Account{}
	err := s.DB.QueryRowContext(ctx, query, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}
