// Package services contains application services for the authctl client.
// This file defines the authentication service: register, login, logout,
// profile and user listing, and a liveness probe.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: authenticate against the server and remember the user.
//   - Logout: forget the session locally.
//   - Profile: the caller's identity as the server resolves it now.
//   - ListUsers: all users; the server only allows this for admins.
//   - CurrentUser: the user from the last successful register/login, or nil.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CurrentUser() *models.User
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client.
type authService struct {
	client client.Client

	mu   sync.RWMutex
	user *models.User
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client client.Client) AuthService {
	return &authService{client: client}
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) error {
	u, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	a.setUser(u)
	return nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	u, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	a.setUser(u)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.Logout()
	a.setUser(nil)
	return nil
}

// Profile refreshes the remembered user with what the server reports, so
// role changes made by an admin show up without logging in again.
func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	u, err := a.client.Profile(ctx)
	if err != nil {
		return nil, err
	}
	a.setUser(u)
	return u, nil
}

func (a *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	return a.client.ListUsers(ctx)
}

func (a *authService) CurrentUser() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func (a *authService) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}
