// Package server wires the users service together: storage backend, auth
// core, services and the gRPC endpoint, plus process lifecycle.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/dmitrijs2005/usersvc/internal/server/auth"
	"github.com/dmitrijs2005/usersvc/internal/server/config"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/usersvc/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/usersvc/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	policy      *auth.AccessPolicy
	userService *services.UserService
}

// NewApp builds the auth core and opens the database. Misconfigured secrets
// or cost parameters fail here, before anything is served.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	hasher, err := auth.NewPasswordHasher(c.HashingSecret, c.HashingParams())
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	tokens, err := auth.NewTokenService(c.TokenConfig())
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	db, rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		policy:      auth.NewAccessPolicy(tokens),
		userService: services.NewUserService(db, rm, hasher, tokens),
	}, nil
}

// Init migrates the schema and seeds the configured admin account.
func (app *App) Init(ctx context.Context) error {
	app.logger.Info(ctx, "Running migrations...")
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	if app.config.AdminUsername == "" {
		return nil
	}

	created, err := app.userService.EnsureAdmin(ctx, app.config.AdminUsername, app.config.AdminEmail, app.config.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		app.logger.Info(ctx, "Admin account created", "username", app.config.AdminUsername)
	} else {
		app.logger.Info(ctx, "Admin account already present", "username", app.config.AdminUsername)
	}
	return nil
}

// Run serves gRPC until ctx is canceled or SIGINT/SIGTERM/SIGQUIT arrives.
// Without a database nothing survives a restart, so the in-memory backend is
// initialized first.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	if app.db == nil {
		if err := app.Init(ctx); err != nil {
			return err
		}
	}

	srv := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.policy)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info(context.Background(), "Shutting down...")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases the database pool.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
