package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/authrpc"
	services "github.com/magabrotheeeer/investment-dashboard/internal/services/auth"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateSession(ctx context.Context, token string) (*services.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *MockAuthService) RevokeSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) LookupAccount(ctx context.Context, email string) (string, bool, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockAuthService) CreateAccount(ctx context.Context, email, password, fullName string) (string, error) {
	args := m.Called(ctx, email, password, fullName)
	return args.String(0), args.Error(1)
}

var _ AuthServiceInterface = (*MockAuthService)(nil)

func newServer(svc *MockAuthService) *CredentialServer {
	return NewCredentialServer(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCredentialServer_Authenticate(t *testing.T) {
	tests := []struct {
		name     string
		in       map[string]any
		setup    func(m *MockAuthService)
		wantCode codes.Code
		want     string
	}{
		{
			name: "success",
			in:   map[string]any{authrpc.FieldEmail: "a@b.com", authrpc.FieldPassword: "pwd"},
			setup: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "a@b.com", "pwd").Return("tok", nil).Once()
			},
			wantCode: codes.OK,
			want:     "tok",
		},
		{
			name:     "missing password",
			in:       map[string]any{authrpc.FieldEmail: "a@b.com"},
			setup:    func(_ *MockAuthService) {},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "bad credentials",
			in:   map[string]any{authrpc.FieldEmail: "a@b.com", authrpc.FieldPassword: "bad"},
			setup: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "a@b.com", "bad").Return("", services.ErrInvalidCredentials).Once()
			},
			wantCode: codes.Unauthenticated,
		},
		{
			name: "internal failure",
			in:   map[string]any{authrpc.FieldEmail: "a@b.com", authrpc.FieldPassword: "pwd"},
			setup: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "a@b.com", "pwd").Return("", errors.New("db down")).Once()
			},
			wantCode: codes.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			tt.setup(svc)

			out, err := newServer(svc).Authenticate(context.Background(), authrpc.Message(tt.in))

			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				assert.Equal(t, tt.want, authrpc.String(out, authrpc.FieldToken))
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestCredentialServer_ValidateSession(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("ValidateSession", mock.Anything, "good").
		Return(&services.Session{AccountID: "acc", Email: "a@b.com"}, nil).Once()
	svc.On("ValidateSession", mock.Anything, "bad").Return(nil, services.ErrInvalidSession).Once()
	svc.On("ValidateSession", mock.Anything, "boom").Return(nil, errors.New("redis down")).Once()
	srv := newServer(svc)
	ctx := context.Background()

	out, err := srv.ValidateSession(ctx, authrpc.Message(map[string]any{authrpc.FieldToken: "good"}))
	require.NoError(t, err)
	assert.True(t, authrpc.Bool(out, authrpc.FieldValid))
	assert.Equal(t, "a@b.com", authrpc.String(out, authrpc.FieldEmail))
	assert.Equal(t, "acc", authrpc.String(out, authrpc.FieldAccountID))

	out, err = srv.ValidateSession(ctx, authrpc.Message(map[string]any{authrpc.FieldToken: "bad"}))
	require.NoError(t, err)
	assert.False(t, authrpc.Bool(out, authrpc.FieldValid))

	_, err = srv.ValidateSession(ctx, authrpc.Message(map[string]any{authrpc.FieldToken: "boom"}))
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestCredentialServer_CreateAccount(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("CreateAccount", mock.Anything, "new@b.com", "pwd", "New").Return("acc-1", nil).Once()
	svc.On("CreateAccount", mock.Anything, "dup@b.com", "pwd", "").Return("", services.ErrAccountExists).Once()
	srv := newServer(svc)
	ctx := context.Background()

	out, err := srv.CreateAccount(ctx, authrpc.Message(map[string]any{
		authrpc.FieldEmail: "new@b.com", authrpc.FieldPassword: "pwd", authrpc.FieldFullName: "New",
	}))
	require.NoError(t, err)
	assert.Equal(t, "acc-1", authrpc.String(out, authrpc.FieldAccountID))

	_, err = srv.CreateAccount(ctx, authrpc.Message(map[string]any{
		authrpc.FieldEmail: "dup@b.com", authrpc.FieldPassword: "pwd",
	}))
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = srv.CreateAccount(ctx, authrpc.Message(map[string]any{authrpc.FieldEmail: "x@b.com"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCredentialServer_LookupAndRevoke(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("LookupAccount", mock.Anything, "a@b.com").Return("acc", true, nil).Once()
	svc.On("RevokeSession", mock.Anything, "tok").Return(nil).Once()
	svc.On("RevokeSession", mock.Anything, "boom").Return(errors.New("redis down")).Once()
	srv := newServer(svc)
	ctx := context.Background()

	out, err := srv.LookupAccount(ctx, authrpc.Message(map[string]any{authrpc.FieldEmail: "a@b.com"}))
	require.NoError(t, err)
	assert.True(t, authrpc.Bool(out, authrpc.FieldFound))
	assert.Equal(t, "acc", authrpc.String(out, authrpc.FieldAccountID))

	_, err = srv.LookupAccount(ctx, authrpc.Message(nil))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = srv.RevokeSession(ctx, authrpc.Message(map[string]any{authrpc.FieldToken: "tok"}))
	assert.NoError(t, err)

	_, err = srv.RevokeSession(ctx, authrpc.Message(map[string]any{authrpc.FieldToken: "boom"}))
	assert.Equal(t, codes.Internal, status.Code(err))
}
