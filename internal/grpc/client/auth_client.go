// Package client реализует клиент шлюза учётных данных поверх gRPC.
package client

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/authrpc"
)

var (
	// ErrInvalidCredentials шлюз отклонил email или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession токен недействителен или отозван.
	ErrInvalidSession = errors.New("invalid session")
	// ErrAccountExists учётная запись уже существует.
	ErrAccountExists = errors.New("account already exists")
)

// Session данные действительной сессии.
type Session struct {
	AccountID string
	Email     string
}

// AuthClient клиент credentials.v1.CredentialService.
type AuthClient struct {
	conn *grpc.ClientConn
}

// NewAuthClient создаёт клиента. Соединение устанавливается при первом вызове.
func NewAuthClient(addr string, opts ...grpc.DialOption) (*AuthClient, error) {
	const op = "client.NewAuthClient"
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AuthClient{conn: conn}, nil
}

// Close закрывает соединение.
func (a *AuthClient) Close() error {
	return a.conn.Close()
}

func (a *AuthClient) invoke(ctx context.Context, method string, in map[string]any) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := a.conn.Invoke(ctx, authrpc.FullMethod(method), authrpc.Message(in), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Authenticate обменивает email и пароль на сессионный токен.
func (a *AuthClient) Authenticate(ctx context.Context, email, password string) (string, error) {
	const op = "client.Authenticate"
	out, err := a.invoke(ctx, authrpc.MethodAuthenticate, map[string]any{
		authrpc.FieldEmail:    email,
		authrpc.FieldPassword: password,
	})
	if err != nil {
		switch status.Code(err) {
		case codes.Unauthenticated, codes.InvalidArgument:
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return authrpc.String(out, authrpc.FieldToken), nil
}

// ValidateSession проверяет токен. Недействительный токен даёт ErrInvalidSession.
func (a *AuthClient) ValidateSession(ctx context.Context, token string) (*Session, error) {
	const op = "client.ValidateSession"
	out, err := a.invoke(ctx, authrpc.MethodValidateSession, map[string]any{authrpc.FieldToken: token})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !authrpc.Bool(out, authrpc.FieldValid) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}
	return &Session{
		AccountID: authrpc.String(out, authrpc.FieldAccountID),
		Email:     authrpc.String(out, authrpc.FieldEmail),
	}, nil
}

// RevokeSession отзывает токен.
func (a *AuthClient) RevokeSession(ctx context.Context, token string) error {
	const op = "client.RevokeSession"
	if _, err := a.invoke(ctx, authrpc.MethodRevokeSession, map[string]any{authrpc.FieldToken: token}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LookupAccount возвращает ID учётной записи и признак её наличия.
func (a *AuthClient) LookupAccount(ctx context.Context, email string) (string, bool, error) {
	const op = "client.LookupAccount"
	out, err := a.invoke(ctx, authrpc.MethodLookupAccount, map[string]any{authrpc.FieldEmail: email})
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return authrpc.String(out, authrpc.FieldAccountID), authrpc.Bool(out, authrpc.FieldFound), nil
}

// CreateAccount создаёт учётную запись и возвращает её ID.
func (a *AuthClient) CreateAccount(ctx context.Context, email, password, fullName string) (string, error) {
	const op = "client.CreateAccount"
	out, err := a.invoke(ctx, authrpc.MethodCreateAccount, map[string]any{
		authrpc.FieldEmail:    email,
		authrpc.FieldPassword: password,
		authrpc.FieldFullName: fullName,
	})
	if status.Code(err) == codes.AlreadyExists {
		return "", fmt.Errorf("%s: %w", op, ErrAccountExists)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return authrpc.String(out, authrpc.FieldAccountID), nil
}
