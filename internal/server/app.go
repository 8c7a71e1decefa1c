// Package server wires the authkeeper components together: storage backend,
// credential hasher, token issuer, auth services, and the HTTP and gRPC
// health servers. It also handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/api"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"

	gs "github.com/dmitrijs2005/authkeeper/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	httpServer  *api.Server
	grpcServer  *gs.GRPCServer
}

func NewApp(c *config.Config) (*App, error) {
	return newApp(context.Background(), c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewJSONLogger(out, c.LogLevel)

	rm, err := openStore(ctx, c)
	if err != nil {
		return nil, err
	}

	issuer, err := auth.NewTokenIssuer(c.SecretKey, c.TokenValidityDuration)
	if err != nil {
		rm.Close()
		return nil, err
	}

	as := services.NewAuthService(rm, auth.NewHasher(c.HashConcurrency), issuer, logger)
	ir := services.NewIdentityResolver(rm, logger)

	httpServer := api.New(api.Deps{
		Addr:       c.HTTPAddr,
		Logger:     logger,
		Auth:       as,
		Tokens:     issuer,
		Identities: ir,
		Store:      rm,
		Metrics:    metrics.New(),
	})

	app := &App{config: c, logger: logger, repomanager: rm, httpServer: httpServer}
	if c.GRPCHealthAddr != "" {
		app.grpcServer = gs.NewGRPCServer(c.GRPCHealthAddr, logger, rm, c.HealthCheckInterval)
	}

	return app, nil
}

func openStore(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.Storage {
	case config.StorageMemory:
		return repomanager.NewInMemoryRepositoryManager(), nil
	case config.StoragePostgres:
		rm, err := repomanager.OpenPostgres(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := rm.RunMigrations(ctx); err != nil {
			rm.Close()
			return nil, fmt.Errorf("db migration error: %w", err)
		}
		return rm, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.Storage)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives, ctx is cancelled, or one of
// the servers fails. The store is closed before returning.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.grpcServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "failed to close store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
