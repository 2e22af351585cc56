// Package password отвечает за хеширование паролей учётных записей
// и генерацию временных паролей для новых подписчиков.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength предельная длина пароля в байтах, которую принимает bcrypt.
const MaxLength = 72

// GetHash возвращает bcrypt-хеш пароля для хранения в таблице accounts.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareHash возвращает nil, если пароль соответствует хешу.
func CompareHash(hash, password string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
