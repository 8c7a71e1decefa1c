// Package users holds the user store: the Repository contract consumed by the
// auth service and its PostgreSQL and in-memory implementations.
//
// Lookups that match nothing return common.ErrorNotFound. Writes that would
// break username or email uniqueness return common.ErrorAlreadyExists; the
// store is the authoritative guard for uniqueness.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	Create(ctx context.Context, user models.NewUser) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]*models.User, error)
}
