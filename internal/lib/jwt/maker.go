// Package jwt выпускает и проверяет сессионные токены пользователей.
//
// Токен подписывается HS256, в нём хранятся email, идентификатор учётной
// записи (subject) и уникальный jti, по которому сессию можно отозвать.
package jwt

import (
	"time"
)

// Maker описывает выпуск и разбор сессионных токенов.
type Maker interface {
	GenerateToken(accountID, email string) (string, *SessionClaims, error)
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует Maker на общем секретном ключе.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewJWTMaker создаёт MakerImpl с секретом и временем жизни токена.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

