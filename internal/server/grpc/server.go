// Package grpc exposes AccountService over gRPC as authkeeper.AuthService,
// together with the standard health service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/authkeeper/internal/authapi"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AccountService is the part of services.AccountService served here.
type AccountService interface {
	Register(ctx context.Context, in services.RegisterInput) (models.PublicAccount, error)
	Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error)
	Verify(ctx context.Context, token string) (string, error)
	Me(ctx context.Context, token string) (models.PublicAccount, error)
}

type GRPCServer struct {
	address  string
	accounts AccountService
	logger   logging.Logger
	health   *health.Server
}

func NewGRPCServer(address string, l logging.Logger, accounts AccountService) *GRPCServer {
	return &GRPCServer{
		address:  address,
		logger:   l.With("module", "grpc_server"),
		accounts: accounts,
		health:   health.NewServer(),
	}
}

// newServer builds a grpc.Server with both services registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	authapi.RegisterAuthServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(authapi.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
