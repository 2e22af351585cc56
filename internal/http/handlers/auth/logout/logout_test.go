package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type RevokerMock struct {
	mock.Mock
}

func (m *RevokerMock) RevokeSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func TestLogoutHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		cookie    string
		revokeErr error
	}{
		{name: "revokes session cookie", cookie: "tok"},
		{name: "revoke failure still logs out", cookie: "tok", revokeErr: errors.New("unavailable")},
		{name: "no cookie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			revoker := new(RevokerMock)
			if tt.cookie != "" {
				revoker.On("RevokeSession", mock.Anything, tt.cookie).Return(tt.revokeErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			New(log, revoker, "session").ServeHTTP(rec, req)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/login", rec.Header().Get("Location"))
			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Empty(t, cookies[0].Value)
			assert.Negative(t, cookies[0].MaxAge)
			revoker.AssertExpectations(t)
		})
	}
}
