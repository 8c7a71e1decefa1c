// Package api provides the HTTP API of the auth service: registration and
// login, the caller's profile, user administration and role-gated dashboards.
//
// Every route declares an auth.Policy in the route table; a single guard
// middleware evaluates it before the handler runs.
//
//	srv := api.New(deps)
//	err := srv.Run(ctx) // returns after ctx is cancelled and in-flight requests drain
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// AuthService is the business logic behind the /auth routes.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	FindAll(ctx context.Context) ([]models.UserView, error)
	FindOne(ctx context.Context, id string) (*models.UserView, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.UserView, error)
	Remove(ctx context.Context, id string) error
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// IdentityResolver maps a token subject to the caller's current identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) *models.Identity
}

// Pinger reports storage reachability for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Addr       string
	Logger     logging.Logger
	Auth       AuthService
	Tokens     TokenVerifier
	Identities IdentityResolver
	Store      Pinger
	Metrics    *metrics.Metrics
}

// Server is the HTTP API server.
type Server struct {
	addr       string
	logger     logging.Logger
	auth       AuthService
	tokens     TokenVerifier
	identities IdentityResolver
	store      Pinger
	metrics    *metrics.Metrics
}

func New(d Deps) *Server {
	m := d.Metrics
	if m == nil {
		m = metrics.New()
	}
	return &Server{
		addr:       d.Addr,
		logger:     d.Logger.With("module", "http_server"),
		auth:       d.Auth,
		tokens:     d.Tokens,
		identities: d.Identities,
		store:      d.Store,
		metrics:    m,
	}
}

// Run serves HTTP on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
