// Package services содержит логику шлюза учётных данных: проверку паролей,
// выпуск, проверку и отзыв сессий, поиск и создание учётных записей.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/investment-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/password"
	"github.com/magabrotheeeer/investment-dashboard/internal/models"
	"github.com/magabrotheeeer/investment-dashboard/internal/storage/repository"
)

var (
	// ErrInvalidCredentials неверный email или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession токен не прошёл проверку или отозван.
	ErrInvalidSession = errors.New("invalid session")
	// ErrAccountExists учётная запись с таким email уже есть.
	ErrAccountExists = errors.New("account already exists")
)

// AccountRepository хранилище учётных записей.
type AccountRepository interface {
	CreateAccount(ctx context.Context, email, passwordHash, fullName string) (string, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

// SessionStore список отозванных сессий.
type SessionStore interface {
	RevokeSession(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Session проверенная сессия.
type Session struct {
	AccountID string
	Email     string
	ExpiresAt time.Time
}

// AuthService реализует операции шлюза учётных данных.
type AuthService struct {
	accounts AccountRepository
	sessions SessionStore
	jwtMaker jwt.Maker
	now      func() time.Time
}

// NewAuthService создаёт AuthService.
func NewAuthService(accounts AccountRepository, sessions SessionStore, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		jwtMaker: jwtMaker,
		now:      time.Now,
	}
}

// Authenticate проверяет пароль и выпускает сессионный токен.
// Отсутствующая учётная запись и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Authenticate(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.Authenticate"
	acc, err := s.accounts.GetAccountByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(acc.PasswordHash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	token, _, err := s.jwtMaker.GenerateToken(acc.ID, acc.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ValidateSession проверяет подпись, срок действия и отзыв токена.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*Session, error) {
	const op = "services.ValidateSession"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidSession, err)
	}
	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}
	return &Session{
		AccountID: claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// RevokeSession отзывает токен до окончания его срока действия.
// Недействительный токен отзывать не нужно, ошибка не возвращается.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	const op = "services.RevokeSession"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.sessions.RevokeSession(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LookupAccount ищет учётную запись по email.
func (s *AuthService) LookupAccount(ctx context.Context, email string) (string, bool, error) {
	const op = "services.LookupAccount"
	acc, err := s.accounts.GetAccountByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return acc.ID, true, nil
}

// CreateAccount хеширует пароль и сохраняет новую учётную запись.
func (s *AuthService) CreateAccount(ctx context.Context, email, rawPassword, fullName string) (string, error) {
	const op = "services.CreateAccount"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	id, err := s.accounts.CreateAccount(ctx, email, hashed, fullName)
	if errors.Is(err, repository.ErrAccountExists) {
		return "", fmt.Errorf("%s: %w", op, ErrAccountExists)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
