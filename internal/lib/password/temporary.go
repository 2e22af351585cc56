package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// TemporaryLength длина временного пароля.
	TemporaryLength = 12

	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%&*"
	allChars    = upperChars + lowerChars + digitChars + symbolChars
)

// GenerateTemporary создаёт временный пароль длиной TemporaryLength.
// В пароле всегда есть хотя бы одна заглавная буква, строчная буква,
// цифра и символ из набора !@#$%&*. Источник случайности crypto/rand.
func GenerateTemporary() (string, error) {
	const op = "password.GenerateTemporary"

	buf := make([]byte, 0, TemporaryLength)
	for _, set := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		c, err := randomChar(set)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		buf = append(buf, c)
	}
	for len(buf) < TemporaryLength {
		c, err := randomChar(allChars)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		buf = append(buf, c)
	}

	// Fisher-Yates, чтобы обязательные символы не стояли в начале.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
