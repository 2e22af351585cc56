package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890"

func TestJWTMaker_GenerateAndParseToken(t *testing.T) {
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(testSecret, tokenTTL)

	tests := []struct {
		name      string
		accountID string
		email     string
	}{
		{name: "regular account", accountID: "c0a8012e-0000-4000-8000-000000000001", email: "user@example.com"},
		{name: "plus address", accountID: "c0a8012e-0000-4000-8000-000000000002", email: "user+tag@domain.com.br"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, issued, err := maker.GenerateToken(tt.accountID, tt.email)
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.NotEmpty(t, issued.ID)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.accountID, claims.Subject)
			assert.Equal(t, issued.ID, claims.ID)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_UniqueJTI(t *testing.T) {
	maker := NewJWTMaker(testSecret, time.Hour)

	_, first, err := maker.GenerateToken("id", "a@b.com")
	require.NoError(t, err)
	_, second, err := maker.GenerateToken("id", "a@b.com")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker(testSecret, 15*time.Minute)

	validToken, _, err := maker.GenerateToken("id", "user@example.com")
	require.NoError(t, err)

	expired, _, err := NewJWTMaker(testSecret, -time.Hour).GenerateToken("id", "user@example.com")
	require.NoError(t, err)

	wrongSecret, _, err := NewJWTMaker("wrong_secret_key", time.Hour).GenerateToken("id", "user@example.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: expired},
		{name: "wrong secret key", token: wrongSecret},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "none algorithm", token: unsignedToken(t)},
		{name: "missing email", token: tokenWithoutEmail(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	maker := NewJWTMaker(testSecret, time.Hour)
	now := time.Date(2025, 1, 31, 9, 30, 0, 0, time.UTC)
	maker.now = func() time.Time { return now }

	token, issued, err := maker.GenerateToken("id", "user@example.com")
	require.NoError(t, err)
	assert.True(t, now.Add(time.Hour).Equal(issued.ExpiresAt.Time))

	now = now.Add(59 * time.Minute)
	_, err = maker.ParseToken(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = maker.ParseToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func unsignedToken(t *testing.T) string {
	t.Helper()
	claims := SessionClaims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return token
}

func tokenWithoutEmail(t *testing.T) string {
	t.Helper()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}
