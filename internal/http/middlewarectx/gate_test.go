package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/client"
	"github.com/magabrotheeeer/investment-dashboard/internal/http/middlewarectx"
	"github.com/magabrotheeeer/investment-dashboard/internal/metrics"
)

const cookieName = "session"

type SessionServiceMock struct {
	mock.Mock
}

func (m *SessionServiceMock) ValidateSession(ctx context.Context, token string) (*client.Session, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(*client.Session)
	return s, args.Error(1)
}

func (m *SessionServiceMock) RevokeSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) IsAdmin(ctx context.Context, email string) bool {
	return m.Called(ctx, email).Bool(0)
}

func (m *ResolverMock) HasActiveSubscription(ctx context.Context, email string) bool {
	return m.Called(ctx, email).Bool(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

type captured struct {
	called  bool
	email   string
	isAdmin bool
}

func nextHandler(c *captured) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.email = middlewarectx.EmailFromContext(r.Context())
		c.isAdmin = middlewarectx.IsAdminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestIsPublic(t *testing.T) {
	tests := map[string]bool{
		"/login":               true,
		"/login/register":      true,
		"/api/webhook/payment": true,
		"/":                    false,
		"/api/planner":         false,
		"/admin/stats":         false,
	}
	for path, want := range tests {
		assert.Equal(t, want, middlewarectx.IsPublic(path), path)
	}
}

func TestAccessGate(t *testing.T) {
	session := &client.Session{AccountID: "acc-1", Email: "user@example.com"}

	tests := []struct {
		name         string
		path         string
		cookie       string
		setup        func(s *SessionServiceMock, r *ResolverMock)
		wantStatus   int
		wantLocation string
		wantCalled   bool
		wantAdmin    bool
		wantCleared  bool
		wantDecision string
	}{
		{
			name:         "no cookie on protected path redirects to login",
			path:         "/",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
			wantDecision: metrics.DecisionNoSession,
		},
		{
			name:         "no cookie on public path passes",
			path:         "/login",
			wantStatus:   http.StatusOK,
			wantCalled:   true,
			wantDecision: metrics.DecisionPublic,
		},
		{
			name:         "no cookie on webhook passes",
			path:         "/api/webhook/payment",
			wantStatus:   http.StatusOK,
			wantCalled:   true,
			wantDecision: metrics.DecisionPublic,
		},
		{
			name:   "invalid session is treated as no session",
			path:   "/api/planner",
			cookie: "bad",
			setup: func(s *SessionServiceMock, _ *ResolverMock) {
				s.On("ValidateSession", mock.Anything, "bad").Return(nil, client.ErrInvalidSession).Once()
			},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
			wantDecision: metrics.DecisionNoSession,
		},
		{
			name:   "gateway error is treated as no session",
			path:   "/",
			cookie: "tok",
			setup: func(s *SessionServiceMock, _ *ResolverMock) {
				s.On("ValidateSession", mock.Anything, "tok").Return(nil, errors.New("unavailable")).Once()
			},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
			wantDecision: metrics.DecisionNoSession,
		},
		{
			name:   "authenticated user on login page goes home",
			path:   "/login",
			cookie: "tok",
			setup: func(s *SessionServiceMock, _ *ResolverMock) {
				s.On("ValidateSession", mock.Anything, "tok").Return(session, nil).Once()
			},
			wantStatus:   http.StatusFound,
			wantLocation: "/",
			wantDecision: metrics.DecisionLoginRedirect,
		},
		{
			name:   "authenticated user on public sub-path passes",
			path:   "/login/register",
			cookie: "tok",
			setup: func(s *SessionServiceMock, _ *ResolverMock) {
				s.On("ValidateSession", mock.Anything, "tok").Return(session, nil).Once()
			},
			wantStatus:   http.StatusOK,
			wantCalled:   true,
			wantDecision: metrics.DecisionPublic,
		},
		{
			name:   "admin passes without subscription lookup",
			path:   "/admin/stats",
			cookie: "tok",
			setup: func(s *SessionServiceMock, r *ResolverMock) {
				s.On("ValidateSession", mock.Anything, "tok").Return(session, nil).Once()
				r.On("IsAdmin", mock.Anything, "user@example.com").Return(true).Once()
			},
			wantStatus:   http.StatusOK,
			wantCalled:   true,
			wantAdmin:    true,
			wantDecision: metrics.DecisionAllowed,
		},
		{
			name:   "subscriber passes",
			path:   "/api/planner",
			cookie: "tok",
			setup: func(s *SessionServiceMock, r *ResolverMock) {
				s.On("ValidateSession", mock.Anything, "tok").Return(session, nil).Once()
				r.On("IsAdmin", mock.Anything, "user@example.com").Return(false).Once()
				r.On("HasActiveSubscription", mock.Anything, "user@example.com").Return(true).Once()
			},
			wantStatus:   http.StatusOK,
			wantCalled:   true,
			wantDecision: metrics.DecisionAllowed,
		},
		{
			name:   "no subscription revokes session and redirects",
			path:   "/",
			cookie: "tok",
			setup: func(s *SessionServiceMock, r *ResolverMock) {
				s.On("ValidateSession", mock.Anything, "tok").Return(session, nil).Once()
				s.On("RevokeSession", mock.Anything, "tok").Return(nil).Once()
				r.On("IsAdmin", mock.Anything, "user@example.com").Return(false).Once()
				r.On("HasActiveSubscription", mock.Anything, "user@example.com").Return(false).Once()
			},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
			wantCleared:  true,
			wantDecision: metrics.DecisionDenied,
		},
		{
			name:   "revoke failure still denies",
			path:   "/",
			cookie: "tok",
			setup: func(s *SessionServiceMock, r *ResolverMock) {
				s.On("ValidateSession", mock.Anything, "tok").Return(session, nil).Once()
				s.On("RevokeSession", mock.Anything, "tok").Return(errors.New("unavailable")).Once()
				r.On("IsAdmin", mock.Anything, "user@example.com").Return(false).Once()
				r.On("HasActiveSubscription", mock.Anything, "user@example.com").Return(false).Once()
			},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
			wantCleared:  true,
			wantDecision: metrics.DecisionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(SessionServiceMock)
			resolver := new(ResolverMock)
			if tt.setup != nil {
				tt.setup(sessions, resolver)
			}
			m := metrics.New()
			c := &captured{}
			gate := middlewarectx.AccessGate(newNoopLogger(), sessions, resolver, cookieName, m)(nextHandler(c))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			assert.Equal(t, tt.wantCalled, c.called)
			if tt.wantCalled && tt.wantDecision == metrics.DecisionAllowed {
				assert.Equal(t, "user@example.com", c.email)
				assert.Equal(t, tt.wantAdmin, c.isAdmin)
			}
			if tt.wantCleared {
				cookies := rec.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, cookieName, cookies[0].Name)
				assert.Negative(t, cookies[0].MaxAge)
			}
			assert.InDelta(t, 1, testutil.ToFloat64(m.GateDecisions.WithLabelValues(tt.wantDecision)), 0)
			sessions.AssertExpectations(t)
			resolver.AssertExpectations(t)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	c := &captured{}
	h := middlewarectx.RequireAdmin(newNoopLogger())(nextHandler(c))

	t.Run("non-admin is redirected home", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Email, "u@example.com"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.False(t, c.called)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		ctx := context.WithValue(req.Context(), middlewarectx.Email, "admin@example.com")
		ctx = context.WithValue(ctx, middlewarectx.IsAdmin, true)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, c.called)
	})
}

func TestSessionCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	middlewarectx.SetSessionCookie(rec, cookieName, "tok", 0, false)
	middlewarectx.ClearSessionCookie(rec, cookieName)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Empty(t, cookies[1].Value)
	assert.Negative(t, cookies[1].MaxAge)
}
