package client

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Profile(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	Ping(ctx context.Context) error
	Logout()
}
