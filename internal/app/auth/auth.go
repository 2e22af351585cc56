// Package auth собирает gRPC-сервис шлюза учётных данных.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"

	"github.com/magabrotheeeer/investment-dashboard/internal/cache"
	"github.com/magabrotheeeer/investment-dashboard/internal/config"
	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/authrpc"
	"github.com/magabrotheeeer/investment-dashboard/internal/grpc/server"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/investment-dashboard/internal/migrations"
	authservices "github.com/magabrotheeeer/investment-dashboard/internal/services/auth"
	"github.com/magabrotheeeer/investment-dashboard/internal/storage/repository"
)

// App gRPC-сервер учётных данных.
type App struct {
	grpcServer *grpc.Server
	listener   net.Listener
	logger     *slog.Logger
	db         *repository.Storage
	cache      *cache.Cache
}

// New подключает хранилище учётных записей и список отозванных сессий.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "auth.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sessions, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservices.NewAuthService(db, sessions, jwtMaker)

	lis, err := net.Listen("tcp", cfg.GRPCAuthAddress)
	if err != nil {
		db.Close()
		sessions.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grpcServer := grpc.NewServer()
	authrpc.Register(grpcServer, server.NewCredentialServer(authService, logger))

	return &App{
		grpcServer: grpcServer,
		listener:   lis,
		logger:     logger,
		db:         db,
		cache:      sessions,
	}, nil
}

// Run обслуживает gRPC-запросы до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("Auth gRPC service listening on", slog.String("address", a.listener.Addr().String()))
		errCh <- a.grpcServer.Serve(a.listener)
	}()

	var err error
	select {
	case <-ctx.Done():
		a.logger.Info("stopping auth gRPC service gracefully")
		a.grpcServer.GracefulStop()
	case err = <-errCh:
	}

	if cerr := a.cache.Close(); cerr != nil {
		a.logger.Error("failed to close redis", sl.Err(cerr))
	}
	if cerr := a.db.Close(); cerr != nil {
		a.logger.Error("failed to close database", sl.Err(cerr))
	}
	return err
}
