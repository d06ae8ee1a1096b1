// Package rest serves the account operations as JSON over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

// AccountService is the part of services.AccountService served here.
type AccountService interface {
	Register(ctx context.Context, in services.RegisterInput) (models.PublicAccount, error)
	Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error)
	Verify(ctx context.Context, token string) (string, error)
	Me(ctx context.Context, token string) (models.PublicAccount, error)
}

type HTTPServer struct {
	address string
	engine  *gin.Engine
	logger  logging.Logger
}

func NewHTTPServer(address string, l logging.Logger, accounts AccountService) *HTTPServer {
	l = l.With("module", "http_server")
	return &HTTPServer{
		address: address,
		engine:  NewRouter(l, accounts),
		logger:  l,
	}
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(l logging.Logger, accounts AccountService) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), requestLogger(l))

	h := &handler{accounts: accounts, logger: l}
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.POST("/verify", h.verify)
	r.GET("/me", bearerAuth(), h.me)

	return r
}

// Handler exposes the router, mostly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address and serves until ctx is done.
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis and shuts down gracefully when ctx is done.
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
