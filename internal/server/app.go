// Package server wires configuration, storage, services and transports
// into a runnable process and handles graceful shutdown.
package server

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	gs "github.com/dmitrijs2005/authkeeper/internal/server/grpc"
	"github.com/dmitrijs2005/authkeeper/internal/server/rest"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/dmitrijs2005/authkeeper/internal/server/storage"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	store    *storage.Store
	accounts *services.AccountService
}

// NewApp opens the store and initializes its schema. Any failure here must
// abort startup.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	comparer, err := auth.NewSecretComparer(c.PasswordHashing)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := store.Init(ctx); err != nil {
		_ = store.Close(context.Background())
		return nil, err
	}

	tokens := auth.NewTokenManager([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	accounts := services.NewAccountService(store.Acquirer, store, tokens, comparer, logger.With("module", "accounts"))

	app := &App{config: c, logger: logger, store: store, accounts: accounts}
	app.warnInsecureSettings(ctx)
	return app, nil
}

func (app *App) warnInsecureSettings(ctx context.Context) {
	if app.config.SecretKey == config.DefaultSecretKey {
		app.logger.Warn(ctx, "token signing secret is the built-in default; set JWT_SECRET")
	}
	if app.config.PasswordHashing == auth.HashingPlain || app.config.PasswordHashing == "" {
		app.logger.Warn(ctx, "credential secrets are stored in plaintext; set PASSWORD_HASHING=bcrypt")
	}
}

// Run serves gRPC (and HTTP when configured) until ctx is done or a server
// fails, then closes the store.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...", "driver", app.config.StoreDriver)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accounts).Run(gctx)
	})

	if app.config.EndpointAddrHTTP != "" {
		g.Go(func() error {
			return rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.accounts).Run(gctx)
		})
	}

	err := g.Wait()
	if cerr := app.store.Close(context.Background()); cerr != nil {
		app.logger.Error(ctx, "closing store", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
