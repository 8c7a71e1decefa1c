package repomanager

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

// RepositoryManager owns the storage backend and vends repositories bound to it.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Users() users.Repository
	// InTx runs fn with repositories bound to a single transaction where the
	// backend supports one. fn's error rolls everything back.
	InTx(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error
	Close() error
}
