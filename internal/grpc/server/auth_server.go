// Package server реализует gRPC-сервер шлюза учётных данных.
//
// CredentialServer разбирает сообщения, делегирует работу AuthService
// и переводит доменные ошибки в коды gRPC.
package server

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/authrpc"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	services "github.com/magabrotheeeer/investment-dashboard/internal/services/auth"
)

// AuthServiceInterface операции, которые сервер делегирует бизнес-логике.
type AuthServiceInterface interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
	ValidateSession(ctx context.Context, token string) (*services.Session, error)
	RevokeSession(ctx context.Context, token string) error
	LookupAccount(ctx context.Context, email string) (string, bool, error)
	CreateAccount(ctx context.Context, email, password, fullName string) (string, error)
}

// CredentialServer реализует authrpc.CredentialServer.
type CredentialServer struct {
	authService AuthServiceInterface
	log         *slog.Logger
}

var _ authrpc.CredentialServer = (*CredentialServer)(nil)

// NewCredentialServer создаёт CredentialServer.
func NewCredentialServer(authService AuthServiceInterface, logger *slog.Logger) *CredentialServer {
	return &CredentialServer{
		authService: authService,
		log:         logger,
	}
}

// Authenticate проверяет пароль и возвращает токен.
func (s *CredentialServer) Authenticate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	email := authrpc.String(in, authrpc.FieldEmail)
	pwd := authrpc.String(in, authrpc.FieldPassword)
	if email == "" || pwd == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	token, err := s.authService.Authenticate(ctx, email, pwd)
	if errors.Is(err, services.ErrInvalidCredentials) {
		s.log.Info("authentication rejected", sl.Email(email))
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}
	if err != nil {
		s.log.Error("authentication failed", sl.Email(email), sl.Err(err))
		return nil, status.Error(codes.Internal, "authentication failed")
	}
	return authrpc.Message(map[string]any{authrpc.FieldToken: token}), nil
}

// ValidateSession сообщает, действителен ли токен. Недействительный токен не ошибка.
func (s *CredentialServer) ValidateSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.authService.ValidateSession(ctx, authrpc.String(in, authrpc.FieldToken))
	if errors.Is(err, services.ErrInvalidSession) {
		return authrpc.Message(map[string]any{authrpc.FieldValid: false}), nil
	}
	if err != nil {
		s.log.Error("session validation failed", sl.Err(err))
		return nil, status.Error(codes.Internal, "session validation failed")
	}
	return authrpc.Message(map[string]any{
		authrpc.FieldValid:     true,
		authrpc.FieldEmail:     sess.Email,
		authrpc.FieldAccountID: sess.AccountID,
	}), nil
}

// RevokeSession отзывает токен.
func (s *CredentialServer) RevokeSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.authService.RevokeSession(ctx, authrpc.String(in, authrpc.FieldToken)); err != nil {
		s.log.Error("session revocation failed", sl.Err(err))
		return nil, status.Error(codes.Internal, "session revocation failed")
	}
	return authrpc.Message(nil), nil
}

// LookupAccount ищет учётную запись по email.
func (s *CredentialServer) LookupAccount(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	email := authrpc.String(in, authrpc.FieldEmail)
	if email == "" {
		return nil, status.Error(codes.InvalidArgument, "email is required")
	}
	id, found, err := s.authService.LookupAccount(ctx, email)
	if err != nil {
		s.log.Error("account lookup failed", sl.Email(email), sl.Err(err))
		return nil, status.Error(codes.Internal, "account lookup failed")
	}
	return authrpc.Message(map[string]any{
		authrpc.FieldFound:     found,
		authrpc.FieldAccountID: id,
	}), nil
}

// CreateAccount создаёт учётную запись.
func (s *CredentialServer) CreateAccount(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	email := authrpc.String(in, authrpc.FieldEmail)
	pwd := authrpc.String(in, authrpc.FieldPassword)
	if email == "" || pwd == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	id, err := s.authService.CreateAccount(ctx, email, pwd, authrpc.String(in, authrpc.FieldFullName))
	if errors.Is(err, services.ErrAccountExists) {
		return nil, status.Error(codes.AlreadyExists, "account already exists")
	}
	if err != nil {
		s.log.Error("account creation failed", sl.Email(email), sl.Err(err))
		return nil, status.Error(codes.Internal, "account creation failed")
	}
	s.log.Info("account created", sl.Email(email), slog.String("account_id", id))
	return authrpc.Message(map[string]any{authrpc.FieldAccountID: id}), nil
}
